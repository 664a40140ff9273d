package lexer

import (
	"patc/internal/diag"
	"patc/internal/source"
	"patc/internal/token"
)

// state определяет, что лексер ожидает следующим.
type state uint8

const (
	stateText         state = iota // литерал, '%', '(' или ')'
	stateAfterPercent              // ключевое слово или '('
	stateAfterKeyword              // необязательный '{...}'
)

type Lexer struct {
	pattern *source.Pattern
	cursor  Cursor
	opts    Options
	look    *token.Token // 1 элементный буфер для токена
	state   state
	opened  []source.Span // незакрытые '('
	eofDone bool
}

func New(p *source.Pattern, opts Options) *Lexer {
	return &Lexer{
		pattern: p,
		cursor:  NewCursor(p),
		opts:    opts,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		if lx.cursor.EOF() {
			return lx.eof()
		}

		switch lx.state {
		case stateAfterPercent:
			lx.state = stateText
			return lx.scanKeywordOrParen()
		case stateAfterKeyword:
			lx.state = stateText
			if lx.cursor.Peek() == '{' {
				return lx.scanOptions()
			}
		}

		switch lx.cursor.Peek() {
		case '%':
			return lx.scanPercent()
		case '(':
			return lx.scanLParen()
		case ')':
			return lx.scanRParen()
		}

		// "\_" может дать пустой литерал — тогда просто идём дальше
		if tok, ok := lx.scanLiteral(); ok {
			return tok
		}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Depth returns the number of composites currently open.
func (lx *Lexer) Depth() int {
	return len(lx.opened)
}

// EmptySpan returns an empty span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{Pattern: lx.pattern.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) eof() token.Token {
	if !lx.eofDone {
		lx.eofDone = true
		if lx.state == stateAfterPercent {
			lx.report(diag.SynExpectKeyword, diag.SevError, lx.EmptySpan(),
				"expected conversion word or '(' after '%', got end of pattern")
		}
		for i := len(lx.opened) - 1; i >= 0; i-- {
			lx.report(diag.SynUnterminatedComposite, diag.SevError, lx.opened[i],
				"unterminated composite: missing ')'",
				diag.Note{Span: lx.EmptySpan(), Msg: "pattern ends here"})
		}
	}
	return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
}

func (lx *Lexer) scanLParen() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.opened = append(lx.opened, sp)
	return token.Token{Kind: token.LParen, Span: sp, Text: "("}
}

func (lx *Lexer) scanRParen() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	if len(lx.opened) == 0 {
		lx.report(diag.SynUnbalancedParen, diag.SevError, sp,
			"unbalanced ')': no composite is open (use \\) for a literal parenthesis)")
		return token.Token{Kind: token.Invalid, Span: sp, Text: ")"}
	}
	lx.opened = lx.opened[:len(lx.opened)-1]
	return token.Token{Kind: token.RParen, Span: sp, Text: ")"}
}
