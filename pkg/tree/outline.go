package tree

import (
	"strings"

	"github.com/kraitsura/mindgrove/pkg/model"
)

// oneLine flattens multi-line node text so the outline stays one line
// per node.
func oneLine(s string) string {
	return strings.Join(strings.Split(s, "\n"), " ")
}

// OutlineText serializes a selection as an indented bullet list, one
// line per node. The selection is reduced to its top-level nodes, each
// emitted at depth zero, and the recursion descends only into children
// that are themselves selected: a selected node's unselected children
// are omitted along with everything beneath them.
func OutlineText(root *model.Node, ids map[string]struct{}) string {
	var b strings.Builder
	var emit func(n *model.Node, depth int)
	emit = func(n *model.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- ")
		b.WriteString(oneLine(n.Text))
		b.WriteString("\n")
		for _, c := range n.Children {
			if _, ok := ids[c.ID]; ok {
				emit(c, depth+1)
			}
		}
	}
	var findTops func(n *model.Node)
	findTops = func(n *model.Node) {
		if _, ok := ids[n.ID]; ok {
			emit(n, 0)
			return
		}
		for _, c := range n.Children {
			findTops(c)
		}
	}
	if root != nil {
		findTops(root)
	}
	return b.String()
}

// MarkdownOutline serializes the whole tree: the root becomes a level-one
// heading, every other node an indented bullet with two spaces per depth
// level below the root's children.
func MarkdownOutline(root *model.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(oneLine(root.Text))
	b.WriteString("\n")
	var emit func(n *model.Node, depth int)
	emit = func(n *model.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- ")
		b.WriteString(oneLine(n.Text))
		b.WriteString("\n")
		for _, c := range n.Children {
			emit(c, depth+1)
		}
	}
	for _, c := range root.Children {
		emit(c, 0)
	}
	return b.String()
}
