package diag

import (
	"patc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of the lexer, parser or compiler.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
