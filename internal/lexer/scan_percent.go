package lexer

import (
	"fmt"

	"patc/internal/diag"
	"patc/internal/token"
)

// scanPercent читает '%' и сырой модификатор ширины ([-.0-9]*).
// Валидация модификатора — задача парсера.
func (lx *Lexer) scanPercent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '%'
	modStart := lx.cursor.Off
	for !lx.cursor.EOF() && isModifierByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.state = stateAfterPercent
	return token.Token{
		Kind: token.Percent,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.pattern.Text[modStart:lx.cursor.Off],
	}
}

// scanKeywordOrParen читает то, что следует за '%': слово или '('.
func (lx *Lexer) scanKeywordOrParen() token.Token {
	if lx.cursor.Peek() == '(' {
		return lx.scanLParen()
	}
	if r, _ := lx.peekRune(); isIdentStartRune(r) {
		tok := lx.scanKeyword()
		lx.state = stateAfterKeyword
		return tok
	}

	start := lx.cursor.Mark()
	r := lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.SynExpectKeyword, diag.SevError, sp,
		fmt.Sprintf("expected conversion word or '(' after '%%', got %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(r)}
}

// scanKeyword: сегменты идентификаторов, соединённые '.', чтобы
// полные имена вида "com.acme.Converter" были представимы. Точка в конце
// слова к нему не относится.
func (lx *Lexer) scanKeyword() token.Token {
	start := lx.cursor.Mark()
	for {
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		if lx.cursor.Peek() != '.' {
			break
		}
		dot := lx.cursor.Mark()
		lx.cursor.Bump()
		if r, _ := lx.peekRune(); !isIdentStartRune(r) {
			lx.cursor.Reset(dot)
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Keyword, Span: sp, Text: lx.pattern.Text[sp.Start:sp.End]}
}
