package ast

import (
	"patc/internal/format"
	"patc/internal/source"
)

type Hints struct{ Nodes uint }

type Builder struct {
	Nodes *Nodes
}

func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 4
	}
	return &Builder{Nodes: NewNodes(hints.Nodes)}
}

func (b *Builder) NewLiteral(sp source.Span, text string) NodeID {
	return b.Nodes.New(Node{Kind: NodeLiteral, Span: sp, Text: text})
}

func (b *Builder) NewSimple(sp source.Span, keyword string, spec format.Spec, options []string) NodeID {
	return b.Nodes.New(Node{
		Kind:    NodeSimple,
		Span:    sp,
		Keyword: keyword,
		Format:  spec,
		Options: options,
	})
}

func (b *Builder) NewComposite(sp source.Span, spec format.Spec) NodeID {
	return b.Nodes.New(Node{Kind: NodeComposite, Span: sp, Format: spec})
}

// PushChild appends child to a composite.
func (b *Builder) PushChild(parent, child NodeID) {
	p := b.Nodes.Get(parent)
	p.Children = append(p.Children, child)
}

// Tree freezes the builder into a tree with the given top-level nodes.
func (b *Builder) Tree(pattern source.PatternID, top []NodeID) *Tree {
	return &Tree{Pattern: pattern, Nodes: b.Nodes, Top: top}
}
