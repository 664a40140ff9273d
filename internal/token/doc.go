// Package token defines the lexical tokens of the conversion-pattern grammar.
// Invariants:
//   - Token.Span covers the raw pattern bytes of the token, escapes included.
//   - Literal.Text holds the decoded text (escapes resolved), never empty.
//   - Percent.Text holds the raw modifier without '%' ("" when absent).
//   - Keyword.Text holds the conversion word; an Options token may follow it.
//   - LParen is produced both for "%(" (after a Percent) and for a bare "(".
package token
