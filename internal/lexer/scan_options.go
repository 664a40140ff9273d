package lexer

import (
	"strings"

	"patc/internal/diag"
	"patc/internal/escape"
	"patc/internal/token"
)

// scanOptions читает список опций '{a, b, "c,d"}' сразу после ключевого слова.
// Элементы разделяются неэкранированной запятой и обрезаются по краям.
// Элементы в кавычках декодируются escape.Basic, остальные — через Resolve.
func (lx *Lexer) scanOptions() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '{'

	var (
		items  []string
		cur    strings.Builder
		quoted bool // текущий элемент был в кавычках
		seen   bool // в списке есть хоть один непустой символ
	)
	flush := func() {
		s := cur.String()
		if !quoted {
			s = strings.TrimFunc(s, isSpace)
		}
		items = append(items, s)
		cur.Reset()
		quoted = false
	}

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.SynUnterminatedOptions, diag.SevError, sp,
				"unterminated option list: missing '}'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.pattern.Text[sp.Start:sp.End]}
		}

		r, _ := lx.peekRune()
		switch {
		case r == '}':
			lx.cursor.Bump()
			if seen || len(items) > 0 {
				flush()
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind:    token.Options,
				Span:    sp,
				Text:    lx.pattern.Text[sp.Start:sp.End],
				Options: items,
			}
		case r == ',':
			lx.cursor.Bump()
			flush()
			seen = false
		case isSpace(r):
			lx.bumpRune()
			if !quoted {
				cur.WriteRune(r)
			}
		case (r == '"' || r == '\'') && strings.TrimFunc(cur.String(), isSpace) == "" && !quoted:
			if !lx.scanQuoted(&cur, r) {
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.SynUnterminatedOptions, diag.SevError, sp,
					"unterminated quoted option: missing closing quote")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.pattern.Text[sp.Start:sp.End]}
			}
			quoted = true
			seen = true
		case r == '\\':
			lx.scanEscape(&cur, optionEscapes)
			seen = true
		default:
			lx.bumpRune()
			cur.WriteRune(r)
			seen = true
		}
	}
}

// scanQuoted читает значение в кавычках q. Внутри кавычек запятые и '}'
// не разделяют элементы. Возвращает false, если кавычка не закрыта.
func (lx *Lexer) scanQuoted(cur *strings.Builder, q rune) bool {
	lx.bumpRune() // открывающая кавычка
	cur.Reset()
	mark := lx.cursor.Off
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if r == '\\' {
			lx.bumpRune()
			if !lx.cursor.EOF() {
				lx.bumpRune()
			}
			continue
		}
		if r == q {
			raw := lx.pattern.Text[mark:lx.cursor.Off]
			lx.bumpRune()
			cur.WriteString(escape.Basic(raw))
			return true
		}
		lx.bumpRune()
	}
	return false
}
