package driver

import (
	"context"
	"strconv"

	"patc/internal/diag"
	"patc/internal/lexer"
	"patc/internal/observ"
	"patc/internal/source"
	"patc/internal/token"
	"patc/internal/trace"
)

type TokenizeResult struct {
	Patterns *source.PatternSet
	Pattern  *source.Pattern
	Tokens   []token.Token
	Bag      *diag.Bag
	Timing   *observ.Report
}

// Tokenize runs only the lexer over a pattern.
func Tokenize(ctx context.Context, ps *source.PatternSet, id source.PatternID, opts Options) (*TokenizeResult, error) {
	p, err := lookup(ps, id)
	if err != nil {
		return nil, err
	}
	pl := newPipeline(opts)
	timer := observ.NewTimer()

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "lex", trace.CurrentSpan(ctx).SpanID)
	done := timer.Track("lex")

	lx := lexer.New(p, lexer.Options{Reporter: pl.rep})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	done(strconv.Itoa(len(tokens)) + " tokens")
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	res := &TokenizeResult{Patterns: ps, Pattern: p, Tokens: tokens, Bag: pl.bag}
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(pl.bag, p.ID, timingPayload{Kind: "tokenize", Pattern: p.Name, Report: report})
	}
	return res, pl.syntaxError(p)
}
