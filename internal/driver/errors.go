package driver

import (
	"errors"
	"fmt"

	"patc/internal/diag"
)

// ErrSyntax is wrapped by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a pattern that could not be compiled. Bag holds all
// diagnostics of the pattern, including the warnings.
type SyntaxError struct {
	Pattern string
	Errors  int
	Bag     *diag.Bag
}

func (e *SyntaxError) Error() string {
	noun := "errors"
	if e.Errors == 1 {
		noun = "error"
	}
	return fmt.Sprintf("pattern %q: %d syntax %s", e.Pattern, e.Errors, noun)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
