package driver

import (
	"context"
	"strconv"

	"patc/internal/ast"
	"patc/internal/compiler"
	"patc/internal/convert"
	"patc/internal/diag"
	"patc/internal/observ"
	"patc/internal/source"
	"patc/internal/trace"
)

type CompileResult[E any] struct {
	Pattern *source.Pattern
	Tree    *ast.Tree
	// Chain is nil when the pattern has syntax errors.
	Chain  *convert.Chain[E]
	Bag    *diag.Bag
	Timing *observ.Report
}

// Compile parses and compiles one pattern. Syntax errors abort before any
// registry lookup and yield a *SyntaxError; unknown words are only warnings.
func Compile[E any](ctx context.Context, ps *source.PatternSet, id source.PatternID, reg *convert.Registry[E], opts Options) (*CompileResult[E], error) {
	p, err := lookup(ps, id)
	if err != nil {
		return nil, err
	}
	return compileOne(ctx, p, reg, opts)
}

func compileOne[E any](ctx context.Context, p *source.Pattern, reg *convert.Registry[E], opts Options) (*CompileResult[E], error) {
	pl := newPipeline(opts)
	timer := observ.NewTimer()
	res := &CompileResult[E]{Pattern: p, Bag: pl.bag}

	res.Tree = parseInto(ctx, p, pl, timer, opts)
	if pl.failed() {
		res.finishTimings(opts, timer, pl.bag)
		return res, pl.syntaxError(p)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "compile", trace.CurrentSpan(ctx).SpanID)
	done := timer.Track("compile")
	res.Chain = compiler.Compile(res.Tree, reg, compiler.Options{
		Reporter:   pl.rep,
		Measure:    opts.Measure,
		Tracer:     tracer,
		ParentSpan: span.ID(),
	})
	note := strconv.Itoa(res.Chain.Len()) + " links"
	done(note)
	span.End(note)

	res.finishTimings(opts, timer, pl.bag)
	return res, nil
}

func (r *CompileResult[E]) finishTimings(opts Options, timer *observ.Timer, bag *diag.Bag) {
	if !opts.Timings {
		return
	}
	report := timer.Report()
	r.Timing = &report
	appendTimingDiagnostic(bag, r.Pattern.ID, timingPayload{Kind: "compile", Pattern: r.Pattern.Name, Report: report})
}
