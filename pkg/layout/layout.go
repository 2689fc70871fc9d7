package layout

import (
	"github.com/kraitsura/mindgrove/pkg/model"
)

// LayoutNode wraps a model node with its computed geometry for one
// layout pass. X is the node's center on the primary axis (vertical in
// mindmap mode); Y is the leading edge on the depth axis (horizontal).
// LayoutNodes are rebuilt wholesale on every Calculate call and never
// mutated afterwards.
type LayoutNode struct {
	Node         *model.Node
	Depth        int
	X            float64
	Y            float64
	Width        float64
	ActualHeight float64
	Parent       *LayoutNode
}

// Rect is an axis-aligned box in conventional screen axes: X grows
// right, Y grows down, origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the node's box in conventional screen axes.
func (n *LayoutNode) Bounds() Rect {
	return Rect{
		X: n.Y,
		Y: n.X - n.ActualHeight/2,
		W: n.Width,
		H: n.ActualHeight,
	}
}

// Center returns the geometric center of the node in conventional
// screen axes.
func (n *LayoutNode) Center() (x, y float64) {
	return n.Y + n.Width/2, n.X
}

// Result is the output of one layout pass: nodes in depth-first
// document order, an id index, and the parent-child link paths.
type Result struct {
	Nodes []*LayoutNode
	ByID  map[string]*LayoutNode
	Links []Link
}

// Engine computes layouts. It carries only constants and the measurer;
// Calculate is a pure function of its arguments.
type Engine struct {
	Config   Config
	Measurer Measurer
}

// NewEngine creates an engine with the given measurer. A nil measurer
// degrades to fixed per-rune widths.
func NewEngine(cfg Config, m Measurer) *Engine {
	return &Engine{Config: cfg, Measurer: m}
}

// Calculate lays out the tree under the given mode.
func (e *Engine) Calculate(root *model.Node, mode model.LayoutMode) *Result {
	res := &Result{ByID: make(map[string]*LayoutNode)}
	if root == nil {
		return res
	}

	e.build(res, root, nil, 0)

	switch mode {
	case model.ModeTree:
		e.treePass(res)
	default:
		e.mindmapPass(res)
	}
	e.buildLinks(res, mode)
	return res
}

// build sizes every node and records it in document order.
func (e *Engine) build(res *Result, n *model.Node, parent *LayoutNode, depth int) {
	maxLine, lines := measureText(e.Measurer, n.Text)
	cfg := e.Config
	ln := &LayoutNode{
		Node:         n,
		Depth:        depth,
		Parent:       parent,
		Width:        clamp(maxLine+cfg.TextPadding, cfg.MinWidth, cfg.MaxWidth),
		ActualHeight: clamp(cfg.BaseHeight+float64(lines-1)*cfg.PerLineHeight, cfg.BaseHeight, cfg.MaxHeight),
	}
	res.Nodes = append(res.Nodes, ln)
	res.ByID[n.ID] = ln
	for _, c := range n.Children {
		e.build(res, c, ln, depth+1)
	}
}

// mindmapPass assigns primary-axis slots with a leaf cursor and centers
// inner nodes over their children, then stages the secondary axis in
// depth columns sized by the widest node of each depth.
func (e *Engine) mindmapPass(res *Result) {
	cfg := e.Config

	var cursor float64
	var prevLeaf *LayoutNode
	var place func(n *LayoutNode)
	place = func(n *LayoutNode) {
		kids := e.children(res, n)
		if len(kids) == 0 {
			if prevLeaf != nil {
				mult := cfg.CousinSep
				if prevLeaf.Parent == n.Parent {
					mult = cfg.SiblingSep
				}
				// Taller nodes push their neighbors further apart.
				tallest := prevLeaf.ActualHeight
				if n.ActualHeight > tallest {
					tallest = n.ActualHeight
				}
				if scale := tallest / cfg.RefHeight; scale > 1 {
					mult *= scale
				}
				cursor += cfg.SlotSize * mult
			}
			n.X = cursor
			prevLeaf = n
			return
		}
		for _, c := range kids {
			place(c)
		}
		n.X = (kids[0].X + kids[len(kids)-1].X) / 2
	}
	if len(res.Nodes) > 0 {
		place(res.Nodes[0])
	}

	// Depth columns: running sums of the widest node per depth plus the
	// fixed horizontal gap.
	maxWidth := make(map[int]float64)
	maxDepth := 0
	for _, n := range res.Nodes {
		if n.Width > maxWidth[n.Depth] {
			maxWidth[n.Depth] = n.Width
		}
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	offsets := make([]float64, maxDepth+1)
	for d := 1; d <= maxDepth; d++ {
		offsets[d] = offsets[d-1] + maxWidth[d-1] + cfg.HGap
	}
	for _, n := range res.Nodes {
		n.Y = offsets[n.Depth]
	}
}

// treePass lays the nodes out as a pre-order indented list.
func (e *Engine) treePass(res *Result) {
	cfg := e.Config
	var cursor float64
	for _, n := range res.Nodes {
		n.X = cursor + n.ActualHeight/2
		n.Y = float64(n.Depth) * cfg.TreeIndent
		cursor += n.ActualHeight + cfg.TreeGap
	}
}

// children returns the layout nodes of n's model children, in order.
func (e *Engine) children(res *Result, n *LayoutNode) []*LayoutNode {
	if len(n.Node.Children) == 0 {
		return nil
	}
	kids := make([]*LayoutNode, 0, len(n.Node.Children))
	for _, c := range n.Node.Children {
		if ln, ok := res.ByID[c.ID]; ok {
			kids = append(kids, ln)
		}
	}
	return kids
}
