package token

import (
	"patc/internal/source"
)

// Token represents a single pattern token with its location.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Options []string // only for Kind == Options
}

// IsDelimiter reports whether the token opens or closes a composite.
func (t Token) IsDelimiter() bool {
	return t.Kind == LParen || t.Kind == RParen
}
