package driver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"patc/internal/convert"
	"patc/internal/source"
	"patc/internal/trace"
)

// CompileAll compiles the given patterns concurrently. Results keep the
// order of ids. Patterns with syntax errors still get a result (with a nil
// chain); their *SyntaxError values are joined into the returned error.
// Other errors (cancellation, unknown ids) abort the batch.
func CompileAll[E any](ctx context.Context, ps *source.PatternSet, ids []source.PatternID, reg *convert.Registry[E], opts Options) ([]*CompileResult[E], error) {
	patterns := make([]*source.Pattern, len(ids))
	for i, id := range ids {
		p, err := lookup(ps, id)
		if err != nil {
			return nil, err
		}
		patterns[i] = p
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	results := make([]*CompileResult[E], len(patterns))
	syntax := make([]error, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(tracer, trace.ScopePattern, "pattern:"+p.Name, parent)
			pctx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: span.ID()})

			res, err := compileOne(pctx, p, reg, opts)
			results[i] = res
			syntax[i] = err
			if err != nil {
				span.End("syntax error")
			} else {
				span.End("ok")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errors.Join(syntax...)
}
