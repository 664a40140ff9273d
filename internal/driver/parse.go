package driver

import (
	"context"
	"fmt"

	"patc/internal/ast"
	"patc/internal/diag"
	"patc/internal/lexer"
	"patc/internal/observ"
	"patc/internal/parser"
	"patc/internal/source"
	"patc/internal/trace"
)

type ParseResult struct {
	Patterns *source.PatternSet
	Pattern  *source.Pattern
	Tree     *ast.Tree
	Bag      *diag.Bag
	Timing   *observ.Report
}

// Parse lexes and parses a pattern. The tree is returned even when the
// pattern has syntax errors; the error is then a *SyntaxError.
func Parse(ctx context.Context, ps *source.PatternSet, id source.PatternID, opts Options) (*ParseResult, error) {
	p, err := lookup(ps, id)
	if err != nil {
		return nil, err
	}
	pl := newPipeline(opts)
	timer := observ.NewTimer()
	tree := parseInto(ctx, p, pl, timer, opts)

	res := &ParseResult{Patterns: ps, Pattern: p, Tree: tree, Bag: pl.bag}
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(pl.bag, p.ID, timingPayload{Kind: "parse", Pattern: p.Name, Report: report})
	}
	return res, pl.syntaxError(p)
}

func parseInto(ctx context.Context, p *source.Pattern, pl *pipeline, timer *observ.Timer, opts Options) *ast.Tree {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", trace.CurrentSpan(ctx).SpanID)
	done := timer.Track("parse")

	lx := lexer.New(p, lexer.Options{Reporter: pl.rep})
	res := parser.ParsePattern(p, lx, ast.NewBuilder(ast.Hints{}), parser.Options{
		Reporter:  pl.rep,
		MaxErrors: opts.maxErrors(),
	})

	l, s, c := res.Tree.Count()
	note := fmt.Sprintf("%d literal, %d simple, %d composite", l, s, c)
	done(note)
	span.End(note)
	return res.Tree
}
