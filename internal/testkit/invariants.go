// Package testkit holds checks shared by the parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"patc/internal/ast"
	"patc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed pattern:
// 1) every node span is non-empty, belongs to p and lies within its text
// 2) siblings are ordered and do not overlap
// 3) a composite span covers the spans of its children
func CheckSpanInvariants(tree *ast.Tree, p *source.Pattern) error {
	if tree == nil || p == nil {
		return fmt.Errorf("nil tree or pattern")
	}
	if tree.Pattern != p.ID {
		return fmt.Errorf("tree points to different pattern id: got=%d want=%d", tree.Pattern, p.ID)
	}
	lenText, err := safecast.Conv[uint32](len(p.Text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	return checkSiblings(tree, tree.Top, p.SpanOf(), lenText)
}

func checkSiblings(tree *ast.Tree, ids []ast.NodeID, parent source.Span, lenText uint32) error {
	var prev source.Span
	for i, id := range ids {
		n := tree.Node(id)
		if n == nil {
			return fmt.Errorf("nil node for id=%d", id)
		}
		sp := n.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", n.Kind, sp)
		}
		if sp.Pattern != parent.Pattern {
			return fmt.Errorf("%s span pattern mismatch: got=%d want=%d", n.Kind, sp.Pattern, parent.Pattern)
		}
		if sp.End > lenText {
			return fmt.Errorf("%s span end beyond text: %d > %d", n.Kind, sp.End, lenText)
		}
		if !parent.Contains(sp) {
			return fmt.Errorf("%s span %v is outside parent span %v", n.Kind, sp, parent)
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("%s span %v overlaps previous sibling %v", n.Kind, sp, prev)
		}
		prev = sp
		if n.Kind == ast.NodeComposite {
			if err := checkSiblings(tree, n.Children, sp, lenText); err != nil {
				return err
			}
		}
	}
	return nil
}
