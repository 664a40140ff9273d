package diag

import (
	"fmt"
	"sort"
	"strings"

	"patc/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Name     string
	Column   source.Column
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation: "<severity> <code> <pattern>:<column> <message>".
// It is used by the CLI short output and by golden-style assertions in tests.
func FormatShortDiagnostics(diags []Diagnostic, ps *source.PatternSet, includeNotes bool) string {
	if ps == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, ps, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Name != dj.Name {
			return di.Name < dj.Name
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d %s", d.Severity, d.Code, d.Name, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []shortDiagnostic, d Diagnostic, ps *source.PatternSet, includeNotes bool) []shortDiagnostic {
	if int(d.Primary.Pattern) >= ps.Len() {
		return out
	}
	name := ps.Get(d.Primary.Pattern).Name
	col, _ := ps.Resolve(d.Primary)
	out = append(out, shortDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Name:     name,
		Column:   col,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			if int(note.Span.Pattern) >= ps.Len() {
				continue
			}
			ncol, _ := ps.Resolve(note.Span)
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Name:     ps.Get(note.Span.Pattern).Name,
				Column:   ncol,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
