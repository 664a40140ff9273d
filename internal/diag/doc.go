// Package diag defines the diagnostic model shared by the lexer, parser and
// compiler of conversion patterns.
//
// # Purpose
//
//   - Provide deterministic data structures describing findings: illegal
//     escapes, syntax errors, unknown conversion words.
//   - Offer light-weight utilities (Reporter, Bag) that let phases emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not format for terminals or perform IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error. Warnings are recoverable (compilation
//     continues with a stand-in), errors are syntax failures and abort.
//   - Code – compact numeric identifier (codes.go) with a stable string ID
//     such as "SYN2001".
//   - Message – short human text.
//   - Primary – source.Span inside the pattern; the CLI turns it into a
//     1-based column.
//   - Notes – optional secondary spans.
//
// # Emitting diagnostics
//
// Phases call Reporter.Report directly or build a record through
// ReportError/ReportWarning and Emit. BagReporter collects into a capped Bag,
// DedupReporter drops repeated findings when several patterns share text.
package diag
