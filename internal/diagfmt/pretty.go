package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"patc/internal/diag"
	"patc/internal/source"
)

type palette struct {
	err, warn, info, note, code, caret, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.caret, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<pattern>:<col>: <SEV> <CODE>: <Message>
//	  | <текст шаблона>
//	  | ^~~~
//
// затем Notes в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, ps *source.PatternSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s%s %s: %s\n",
			location(d.Primary, ps),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		// тайминги несут JSON в заметке, подчёркивать нечего
		if d.Code == diag.ObsTimings {
			continue
		}
		writeSnippet(w, d.Primary, ps, pal, opts.Width)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s%s\n", pal.gutter.Sprint("="), pal.note.Sprint("note: "), noteText(note, d.Primary, ps))
			if note.Span != d.Primary && validSpan(note.Span, ps) {
				writeSnippet(w, note.Span, ps, pal, opts.Width)
			}
		}
	}
}

func validSpan(sp source.Span, ps *source.PatternSet) bool {
	return ps != nil && int(sp.Pattern) < ps.Len()
}

func location(sp source.Span, ps *source.PatternSet) string {
	if !validSpan(sp, ps) {
		return ""
	}
	p := ps.Get(sp.Pattern)
	return fmt.Sprintf("%s:%d: ", p.Name, p.ColumnAt(sp.Start))
}

func noteText(note diag.Note, primary source.Span, ps *source.PatternSet) string {
	if note.Span.Pattern != primary.Pattern && validSpan(note.Span, ps) {
		return location(note.Span, ps) + note.Msg
	}
	return note.Msg
}

// writeSnippet печатает строку шаблона и подчёркивание под span.
func writeSnippet(w io.Writer, sp source.Span, ps *source.PatternSet, pal palette, width int) {
	if !validSpan(sp, ps) {
		return
	}
	text := ps.Get(sp.Pattern).Text
	start, end := int(sp.Start), int(sp.End)
	start = min(start, len(text))
	end = max(min(end, len(text)), start)

	// многострочный шаблон: показываем только строку с началом span
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}
	end = min(end, lineEnd)

	before := visible(text[lineStart:start])
	inside := visible(text[start:end])
	after := visible(text[end:lineEnd])

	before, after, clipped := clip(before, inside, after, width)

	pad := runewidth.StringWidth(before)
	marks := runewidth.StringWidth(inside)
	underline := "^"
	if marks > 1 {
		underline += strings.Repeat("~", marks-1)
	}

	gutter := pal.gutter.Sprint("|")
	fmt.Fprintf(w, "  %s %s%s%s\n", gutter, clipped.left, before+inside+after, clipped.right)
	fmt.Fprintf(w, "  %s %s%s\n", gutter, strings.Repeat(" ", pad+runewidth.StringWidth(clipped.left)), pal.caret.Sprint(underline))
}

// visible заменяет управляющие символы, чтобы не ломать выравнивание каретки.
func visible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t':
			return ' '
		case '\r':
			return ' '
		}
		return r
	}, s)
}

type ellipsis struct{ left, right string }

// clip сокращает контекст вокруг span до width колонок.
func clip(before, inside, after string, width int) (string, string, ellipsis) {
	var e ellipsis
	if width <= 0 {
		return before, after, e
	}
	total := runewidth.StringWidth(before) + runewidth.StringWidth(inside) + runewidth.StringWidth(after)
	if total <= width {
		return before, after, e
	}
	room := max(width-runewidth.StringWidth(inside), 0)
	keepBefore := min(runewidth.StringWidth(before), room/2)
	keepAfter := min(runewidth.StringWidth(after), room-keepBefore)
	// остаток отдаём левой части, если справа места не надо
	keepBefore = min(runewidth.StringWidth(before), room-keepAfter)

	if w := runewidth.StringWidth(before); keepBefore < w {
		before = tailWidth(before, keepBefore)
		e.left = "..."
	}
	if keepAfter < runewidth.StringWidth(after) {
		after = runewidth.Truncate(after, keepAfter, "")
		e.right = "..."
	}
	return before, after, e
}

// tailWidth возвращает суффикс s шириной не более w колонок.
func tailWidth(s string, w int) string {
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if used+rw > w {
			break
		}
		used += rw
		i--
	}
	return string(runes[i:])
}
