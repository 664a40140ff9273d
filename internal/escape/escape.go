// Package escape resolves backslash sequences in conversion patterns.
//
// Resolve handles the pattern grammar: a fixed table (\_ \\ \t \r \n) plus a
// grammar-specific set of characters that may be escaped to appear literally.
// Basic decodes the conventional quoted-string table and never fails.
package escape

import (
	"fmt"
	"strings"
)

// Outcome describes what an escape sequence contributes to the output.
type Outcome struct {
	Char rune
	Emit bool // false for \_ which is swallowed
}

// IllegalError reports an escape that is neither in the fixed table nor in
// the grammar's extra set.
type IllegalError struct {
	Char   rune
	Column int    // 1-based column of the backslash
	Valid  string // extra escapable characters of the grammar
}

func (e *IllegalError) Error() string {
	return fmt.Sprintf("illegal char '%c' at column %d. Only \\\\, \\_%s, \\t, \\n, \\r combinations are allowed as escape characters",
		e.Char, e.Column, Listing(e.Valid))
}

// Resolve resolves the escape `\next`. Characters of extra are emitted as-is;
// they let a grammar legalize its own delimiters.
func Resolve(extra string, next rune, column int) (Outcome, error) {
	if strings.ContainsRune(extra, next) {
		return Outcome{Char: next, Emit: true}, nil
	}
	switch next {
	case '_':
		return Outcome{}, nil
	case '\\':
		return Outcome{Char: '\\', Emit: true}, nil
	case 't':
		return Outcome{Char: '\t', Emit: true}, nil
	case 'r':
		return Outcome{Char: '\r', Emit: true}, nil
	case 'n':
		return Outcome{Char: '\n', Emit: true}, nil
	}
	return Outcome{}, &IllegalError{Char: next, Column: column, Valid: extra}
}

// Listing formats extra as ", \(, \)" for diagnostics.
func Listing(extra string) string {
	var b strings.Builder
	for _, r := range extra {
		b.WriteString(", \\")
		b.WriteRune(r)
	}
	return b.String()
}
