package parser

import (
	"errors"
	"fmt"

	"patc/internal/ast"
	"patc/internal/diag"
	"patc/internal/format"
	"patc/internal/source"
	"patc/internal/token"
)

var formatNone = format.Spec{}

// parseConversion — simple := '%' spec? keyword options?
// composite := '%' spec? '(' pattern ')'
func (p *Parser) parseConversion(depth int) (ast.NodeID, bool) {
	pct := p.advance()
	spec := p.parseSpec(pct)

	switch next := p.lx.Peek(); next.Kind {
	case token.LParen:
		return p.parseComposite(depth, pct.Span, spec), true
	case token.Keyword:
		p.advance()
		sp := pct.Span.Cover(next.Span)
		var opts []string
		if p.at(token.Options) {
			o := p.advance()
			opts = o.Options
			sp = sp.Cover(o.Span)
		}
		return p.arenas.NewSimple(sp, next.Text, spec, opts), true
	default:
		// EOF или Invalid после '%': лексер уже сообщил SynExpectKeyword
		return ast.NoNodeID, false
	}
}

// parseSpec проверяет сырой модификатор из токена '%'.
func (p *Parser) parseSpec(pct token.Token) format.Spec {
	if pct.Text == "" {
		return formatNone
	}
	spec, err := format.Parse(pct.Text)
	if err == nil {
		return spec
	}

	sp := pct.Span
	var perr *format.ParseError
	if errors.As(err, &perr) {
		at := sp.Start + 1 + uint32(perr.Offset) // #nosec G115 -- offset is within the token
		end := min(at+1, sp.End)
		at = min(at, end)
		sp = source.Span{Pattern: sp.Pattern, Start: at, End: end}
	}
	p.report(diag.SynBadFormat, diag.SevError, sp,
		fmt.Sprintf("malformed format modifier %q: %v", pct.Text, describe(err)))
	return formatNone
}

func describe(err error) string {
	var perr *format.ParseError
	if errors.As(err, &perr) {
		return perr.Msg
	}
	return err.Error()
}

// parseComposite разбирает '(' pattern ')' начиная с текущего '('.
// start — span '%' (или самой скобки для голого '(').
func (p *Parser) parseComposite(depth int, start source.Span, spec format.Spec) ast.NodeID {
	open := p.advance() // '('
	id := p.arenas.NewComposite(start.Cover(open.Span), spec)

	children := p.parseSequence(depth + 1)
	for _, child := range children {
		p.arenas.PushChild(id, child)
	}

	node := p.arenas.Nodes.Get(id)
	if closing, ok := p.eat(token.RParen); ok {
		node.Span = node.Span.Cover(closing.Span)
	} else {
		// незакрытую скобку лексер сообщает в конце ввода
		node.Span = node.Span.Cover(p.lastSpan)
	}

	if len(children) == 0 {
		p.report(diag.SynEmptyComposite, diag.SevWarning, node.Span, "empty composite renders nothing")
	}
	return id
}
