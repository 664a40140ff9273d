package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"patc/internal/diag"
	"patc/internal/diagfmt"
	"patc/internal/observ"
	"patc/internal/source"
)

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printDiagnostics печатает bag в stderr в человекочитаемом виде.
// --quiet оставляет только ошибки; тайминги печатаются отдельной таблицей.
func (a *app) printDiagnostics(bag *diag.Bag, ps *source.PatternSet) {
	if bag == nil {
		return
	}
	bag.Filter(func(d diag.Diagnostic) bool {
		if d.Code == diag.ObsTimings {
			return false
		}
		return !a.quiet || d.Severity >= diag.SevError
	})
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(a.stderr, bag, ps, diagfmt.PrettyOpts{
		Color:     a.colorErr,
		Width:     max(terminalWidth(a.stderr)-4, 0),
		ShowNotes: true,
	})
}

func (a *app) printTimings(reports ...*observ.Report) {
	if !a.timings {
		return
	}
	var collected []observ.Report
	for _, r := range reports {
		if r != nil {
			collected = append(collected, *r)
		}
	}
	if len(collected) == 0 {
		return
	}
	fmt.Fprint(a.stderr, observ.Merge(collected...).Summary())
}

// reportProblem выводит ошибку командной строки как диагностику:
// текст аргумента становится виртуальным шаблоном с кареткой под ним.
func (a *app) reportProblem(ps *source.PatternSet, origin, text string, code diag.Code, msg string, notes ...string) error {
	id := ps.AddVirtual(origin, text)
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  ps.Get(id).SpanOf(),
	}
	for _, n := range notes {
		d = d.WithNote(d.Primary, n)
	}
	bag := diag.NewBag(1 + len(notes))
	bag.Add(d)
	a.printDiagnostics(bag, ps)
	return errReported
}

func checkFormat(name string, allowed ...string) (string, error) {
	name = strings.ToLower(name)
	for _, f := range allowed {
		if name == f {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", name, strings.Join(allowed, "|"))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
