// Package compiler turns a parsed pattern into a converter chain.
package compiler

import (
	"fmt"
	"strings"

	"patc/internal/ast"
	"patc/internal/convert"
	"patc/internal/diag"
	"patc/internal/format"
	"patc/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	// Measure overrides the width measure of every format spec.
	Measure format.Measure
	Tracer  trace.Tracer
	// ParentSpan is the trace span node events are attached to.
	ParentSpan uint64
}

type compiler[E any] struct {
	tree *ast.Tree
	reg  *convert.Registry[E]
	opts Options
}

// Compile builds the chain for tree. Unknown words and failing factories
// are reported as warnings and replaced by empty links, so Compile always
// returns a usable chain.
func Compile[E any](tree *ast.Tree, reg *convert.Registry[E], opts Options) *convert.Chain[E] {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	c := compiler[E]{tree: tree, reg: reg, opts: opts}
	if tree == nil {
		return &convert.Chain[E]{}
	}
	return c.sequence(tree.Top)
}

func (c *compiler[E]) sequence(ids []ast.NodeID) *convert.Chain[E] {
	chain := &convert.Chain[E]{}
	for _, id := range ids {
		n := c.tree.Node(id)
		if n == nil {
			continue
		}
		chain.Append(c.node(n))
	}
	return chain
}

func (c *compiler[E]) node(n *ast.Node) *convert.Link[E] {
	switch n.Kind {
	case ast.NodeLiteral:
		c.point("literal", n.Text)
		return convert.NewLiteral[E](n.Text)
	case ast.NodeComposite:
		c.point("composite", n.Format.String())
		inner := c.sequence(n.Children)
		return convert.NewComposite(inner, c.spec(n.Format))
	default:
		return c.simple(n)
	}
}

func (c *compiler[E]) simple(n *ast.Node) *convert.Link[E] {
	c.point("simple", n.Keyword)

	var factory convert.Factory[E]
	ok := false
	if c.reg != nil {
		factory, ok = c.reg.Lookup(n.Keyword)
	}
	if !ok {
		b := diag.ReportWarning(c.opts.Reporter, diag.ConvUnknownWord, n.Span,
			fmt.Sprintf("[%s] is not a valid conversion word", n.Keyword))
		if c.reg != nil {
			if s := c.reg.Suggest(n.Keyword); len(s) > 0 {
				b.WithNote(n.Span, "did you mean "+strings.Join(s, ", ")+"?")
			}
		}
		b.Emit()
		return convert.NewEmpty[E](n.Keyword)
	}

	conv, err := factory(n.Options)
	if err == nil && conv == nil {
		err = fmt.Errorf("factory returned no converter")
	}
	if err != nil {
		diag.ReportWarning(c.opts.Reporter, diag.ConvFactoryFailed, n.Span,
			fmt.Sprintf("failed to create converter for [%s]: %v", n.Keyword, err)).Emit()
		return convert.NewEmpty[E](n.Keyword)
	}
	return convert.NewSimple(n.Keyword, conv, c.spec(n.Format))
}

func (c *compiler[E]) spec(s format.Spec) format.Spec {
	s.Measure = c.opts.Measure
	return s
}

func (c *compiler[E]) point(kind, detail string) {
	trace.Point(c.opts.Tracer, trace.ScopeNode, kind, c.opts.ParentSpan, detail)
}
