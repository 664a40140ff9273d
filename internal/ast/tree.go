package ast

import "patc/internal/source"

// Tree is a parsed pattern. Top holds the top-level nodes in source order.
type Tree struct {
	Pattern source.PatternID
	Nodes   *Nodes
	Top     []NodeID
}

// Node returns the node for id or nil.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || t.Nodes == nil {
		return nil
	}
	return t.Nodes.Get(id)
}

// Walk visits every node depth-first in source order. Returning false from
// fn skips the children of that node.
func (t *Tree) Walk(fn func(id NodeID, n *Node, depth int) bool) {
	if t == nil {
		return
	}
	var visit func(ids []NodeID, depth int)
	visit = func(ids []NodeID, depth int) {
		for _, id := range ids {
			n := t.Node(id)
			if n == nil {
				continue
			}
			if fn(id, n, depth) && n.Kind == NodeComposite {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(t.Top, 0)
}

// Count returns the number of nodes of each kind reachable from Top.
func (t *Tree) Count() (literals, simples, composites int) {
	t.Walk(func(_ NodeID, n *Node, _ int) bool {
		switch n.Kind {
		case NodeLiteral:
			literals++
		case NodeSimple:
			simples++
		case NodeComposite:
			composites++
		}
		return true
	})
	return literals, simples, composites
}
