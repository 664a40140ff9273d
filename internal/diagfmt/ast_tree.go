package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"patc/internal/ast"
	"patc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTTree рисует дерево шаблона ASCII-графикой, корень сверху.
func FormatASTTree(w io.Writer, tree *ast.Tree, ps *source.PatternSet) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	label := "Pattern"
	if validSpan(source.Span{Pattern: tree.Pattern}, ps) {
		label = "Pattern " + ps.Get(tree.Pattern).Name
	}
	root := &treeNode{label: label, children: buildTreeNodes(tree, tree.Top)}
	for _, line := range renderTree(root).lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func buildTreeNodes(tree *ast.Tree, ids []ast.NodeID) []*treeNode {
	nodes := make([]*treeNode, 0, len(ids))
	for _, id := range ids {
		n := tree.Node(id)
		if n == nil {
			continue
		}
		node := &treeNode{label: nodeLabel(n)}
		if n.Kind == ast.NodeComposite {
			node.children = buildTreeNodes(tree, n.Children)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// renderTree converts a treeNode into a treeBlock. Widths are terminal
// columns; root is the column of the node's vertical connector.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := runewidth.StringWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		if len(childBlocks[i].lines) > maxChildHeight {
			maxChildHeight = len(childBlocks[i].lines)
		}
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
		rootPos = labelWidth / 2
	} else {
		rootPos += shift
	}

	width := totalWidth
	rootLine := label
	if shift > 0 {
		rootLine = strings.Repeat(" ", shift) + label
	}
	if runewidth.StringWidth(rootLine) < width {
		rootLine += strings.Repeat(" ", width-runewidth.StringWidth(rootLine))
	} else if runewidth.StringWidth(rootLine) > width {
		width = runewidth.StringWidth(rootLine)
		for i := range positions {
			if positions[i] >= width {
				width = positions[i] + 1
			}
		}
		if runewidth.StringWidth(rootLine) < width {
			rootLine += strings.Repeat(" ", width-runewidth.StringWidth(rootLine))
		}
	}

	connector := make([]byte, width)
	for i := range connector {
		connector[i] = ' '
	}
	if rootPos >= width {
		needed := rootPos - width + 1
		rootLine += strings.Repeat(" ", needed)
		connector = append(connector, make([]byte, needed)...)
		for i := width; i < len(connector); i++ {
			connector[i] = ' '
		}
		width = len(connector)
	}
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}
	connectorLine := string(connector)

	childLines := make([]string, maxChildHeight)
	for row := 0; row < maxChildHeight; row++ {
		var sb strings.Builder
		if childPrefix > 0 {
			sb.WriteString(strings.Repeat(" ", childPrefix))
		}
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			if lw := runewidth.StringWidth(line); lw < block.width {
				line += strings.Repeat(" ", block.width-lw)
			}
			sb.WriteString(line)
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		rowStr := sb.String()
		if rw := runewidth.StringWidth(rowStr); rw < width {
			rowStr += strings.Repeat(" ", width-rw)
		}
		childLines[row] = rowStr
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, connectorLine)
	lines = append(lines, childLines...)

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
