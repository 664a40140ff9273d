package parser

import (
	"patc/internal/ast"
	"patc/internal/diag"
	"patc/internal/lexer"
	"patc/internal/source"
	"patc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser — состояние парсера на один шаблон
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParsePattern — входная точка для разбора одного шаблона.
// Требует уже созданный lexer (на основе source.Pattern). Все синтаксические
// ошибки собираются за один проход; проверка имён конвертеров сюда не входит.
func ParsePattern(p *source.Pattern, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	ps := Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	top := ps.parseSequence(0)
	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		Tree: arenas.Tree(p.ID, top),
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseSequence — pattern := (literal | simple | composite)*
// На глубине > 0 останавливается перед ')' своего composite.
func (p *Parser) parseSequence(depth int) []ast.NodeID {
	var nodes []ast.NodeID
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return nodes
		case token.RParen:
			if depth > 0 {
				return nodes
			}
			// лексер не выдаёт RParen на нулевой глубине, но на всякий случай
			p.advance()
		case token.Literal:
			p.advance()
			nodes = append(nodes, p.arenas.NewLiteral(tok.Span, tok.Text))
		case token.Percent:
			if id, ok := p.parseConversion(depth); ok {
				nodes = append(nodes, id)
			}
		case token.LParen:
			nodes = append(nodes, p.parseComposite(depth, tok.Span, formatNone))
		default:
			// Invalid: лексер уже сообщил об ошибке
			p.advance()
		}
	}
}
