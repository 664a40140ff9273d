// Package trace provides a tracing subsystem for the pattern compiler.
//
// Tracing follows one CLI command through its phases (lex, parse, compile),
// through every pattern compiled by `patc check`, and at debug level down
// to individual AST nodes.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	patc check --trace=- --trace-level=phase
//	patc render --trace=trace.ndjson --trace-level=debug '%-5level %msg'
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a command fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only the ring dump on failure
//   - LevelPhase: command and phase boundaries
//   - LevelDetail: per-pattern events
//   - LevelDebug: everything including AST nodes
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "parse", parentID)
//	defer span.End("")
package trace
