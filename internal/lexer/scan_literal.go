package lexer

import (
	"errors"
	"fmt"
	"strings"

	"patc/internal/diag"
	"patc/internal/escape"
	"patc/internal/token"
)

// scanLiteral читает текст до '%', '(' или ')' с разбором escape-последовательностей.
// Возвращает false, если после разбора текст пуст (например, только "\_").
func (lx *Lexer) scanLiteral() (token.Token, bool) {
	start := lx.cursor.Mark()
	var sb strings.Builder

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '%' || b == '(' || b == ')' {
			break
		}
		if b == '\\' {
			lx.scanEscape(&sb, LiteralEscapes)
			continue
		}
		sb.WriteRune(lx.bumpRune())
	}

	if sb.Len() == 0 {
		return token.Token{}, false
	}
	return token.Token{Kind: token.Literal, Span: lx.cursor.SpanFrom(start), Text: sb.String()}, true
}

// scanEscape разбирает '\x' в позиции курсора и дописывает результат в sb.
// Недопустимые последовательности репортятся как warning и остаются в тексте как есть.
func (lx *Lexer) scanEscape(sb *strings.Builder, extra string) {
	start := lx.cursor.Mark()
	col := int(lx.pattern.ColumnAt(lx.cursor.Off))
	lx.cursor.Bump() // '\'

	if lx.cursor.EOF() {
		lx.report(diag.EscDangling, diag.SevWarning, lx.cursor.SpanFrom(start),
			fmt.Sprintf("dangling '\\' at column %d is kept literally", col))
		sb.WriteByte('\\')
		return
	}

	next := lx.bumpRune()
	out, err := escape.Resolve(extra, next, col)
	if err != nil {
		var illegal *escape.IllegalError
		if errors.As(err, &illegal) {
			lx.report(diag.EscIllegal, diag.SevWarning, lx.cursor.SpanFrom(start), illegal.Error())
		}
		sb.WriteByte('\\')
		sb.WriteRune(next)
		return
	}
	if out.Emit {
		sb.WriteRune(out.Char)
	}
}
