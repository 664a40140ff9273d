package driver

import (
	"fmt"

	"fortio.org/safecast"

	"patc/internal/diag"
	"patc/internal/format"
	"patc/internal/source"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

type Options struct {
	MaxDiagnostics int
	Measure        format.Measure
	// Timings appends an OBS6001 info diagnostic with phase durations.
	Timings bool
	// Jobs bounds the concurrency of CompileAll; <= 0 means GOMAXPROCS.
	Jobs int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.maxDiagnostics())
	if err != nil {
		return 0
	}
	return n
}

// errorCounter считает ошибки независимо от лимита Bag,
// чтобы переполненный bag не скрыл синтаксическую ошибку.
type errorCounter struct {
	next   diag.Reporter
	errors int
}

func (r *errorCounter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev >= diag.SevError {
		r.errors++
	}
	r.next.Report(code, sev, primary, msg, notes)
}

// pipeline — bag и цепочка репортеров для одного шаблона.
type pipeline struct {
	bag     *diag.Bag
	counter *errorCounter
	rep     diag.Reporter
}

func newPipeline(opts Options) *pipeline {
	bag := diag.NewBag(opts.maxDiagnostics())
	counter := &errorCounter{next: &diag.BagReporter{Bag: bag}}
	return &pipeline{
		bag:     bag,
		counter: counter,
		rep:     diag.NewDedupReporter(counter),
	}
}

func (p *pipeline) failed() bool {
	return p.counter.errors > 0
}

func (p *pipeline) syntaxError(pattern *source.Pattern) error {
	if !p.failed() {
		return nil
	}
	return &SyntaxError{
		Pattern: pattern.Name,
		Errors:  p.counter.errors,
		Bag:     p.bag,
	}
}

func lookup(ps *source.PatternSet, id source.PatternID) (*source.Pattern, error) {
	if ps == nil || int(id) >= ps.Len() {
		return nil, fmt.Errorf("unknown pattern id %d", id)
	}
	return ps.Get(id), nil
}
