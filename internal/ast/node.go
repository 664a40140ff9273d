package ast

import (
	"patc/internal/format"
	"patc/internal/source"
)

type NodeKind uint8

const (
	NodeLiteral   NodeKind = iota // фиксированный текст
	NodeSimple                    // %keyword{opts}
	NodeComposite                 // %(...)
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "Literal"
	case NodeSimple:
		return "Simple"
	case NodeComposite:
		return "Composite"
	default:
		return "NodeKind(?)"
	}
}

// Node is one element of a parsed pattern. Which fields are meaningful
// depends on Kind: Text for literals, Keyword/Options for simple nodes,
// Children for composites. Format applies to simple and composite nodes.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Text     string
	Keyword  string
	Format   format.Spec
	Options  []string
	Children []NodeID
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{Arena: NewArena[Node](capHint)}
}

func (n *Nodes) New(node Node) NodeID {
	return NodeID(n.Arena.Allocate(node))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

func (n *Nodes) Len() uint32 {
	return n.Arena.Len()
}
