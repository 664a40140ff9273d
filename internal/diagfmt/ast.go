package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"patc/internal/ast"
	"patc/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Keyword  string          `json:"keyword,omitempty"`
	Format   string          `json:"format,omitempty"`
	Options  []string        `json:"options,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// nodeLabel — однострочное описание узла для pretty и tree вывода.
func nodeLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.NodeLiteral:
		return fmt.Sprintf("Literal %q", n.Text)
	case ast.NodeSimple:
		var sb strings.Builder
		sb.WriteString("Simple %")
		sb.WriteString(n.Format.String())
		sb.WriteString(n.Keyword)
		if n.Options != nil {
			quoted := make([]string, len(n.Options))
			for i, opt := range n.Options {
				quoted[i] = fmt.Sprintf("%q", opt)
			}
			sb.WriteString("{" + strings.Join(quoted, ",") + "}")
		}
		return sb.String()
	case ast.NodeComposite:
		return "Composite %" + n.Format.String() + "(...)"
	}
	return n.Kind.String()
}

func formatSpan(span source.Span, ps *source.PatternSet) string {
	if validSpan(span, ps) {
		start, end := ps.Resolve(span)
		return fmt.Sprintf("%d-%d", start, end)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTPretty печатает дерево в виде списка с отступами ├─ / └─.
func FormatASTPretty(w io.Writer, tree *ast.Tree, ps *source.PatternSet) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	header := "Pattern"
	if validSpan(source.Span{Pattern: tree.Pattern}, ps) {
		p := ps.Get(tree.Pattern)
		header = fmt.Sprintf("Pattern %s (span: %s)", p.Name, formatSpan(p.SpanOf(), ps))
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	return formatNodesPretty(w, tree, tree.Top, ps, "")
}

func formatNodesPretty(w io.Writer, tree *ast.Tree, ids []ast.NodeID, ps *source.PatternSet, prefix string) error {
	for i, id := range ids {
		n := tree.Node(id)
		if n == nil {
			continue
		}
		branch, next := "├─ ", "│  "
		if i == len(ids)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, nodeLabel(n), formatSpan(n.Span, ps)); err != nil {
			return err
		}
		if n.Kind == ast.NodeComposite {
			if err := formatNodesPretty(w, tree, n.Children, ps, prefix+next); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatASTJSON выводит дерево в JSON формате.
func FormatASTJSON(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	output := ASTNodeOutput{
		Type:     "Pattern",
		Children: nodesJSON(tree, tree.Top),
	}
	if len(tree.Top) > 0 {
		first, last := tree.Node(tree.Top[0]), tree.Node(tree.Top[len(tree.Top)-1])
		if first != nil && last != nil {
			output.Span = first.Span.Cover(last.Span)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func nodesJSON(tree *ast.Tree, ids []ast.NodeID) []ASTNodeOutput {
	if len(ids) == 0 {
		return nil
	}
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		n := tree.Node(id)
		if n == nil {
			continue
		}
		node := ASTNodeOutput{
			Type:    n.Kind.String(),
			Span:    n.Span,
			Text:    n.Text,
			Keyword: n.Keyword,
			Format:  n.Format.String(),
			Options: n.Options,
		}
		if n.Kind == ast.NodeComposite {
			node.Children = nodesJSON(tree, n.Children)
		}
		out = append(out, node)
	}
	return out
}
