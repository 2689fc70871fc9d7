package viewport

import (
	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/tree"
)

// Intersects reports whether two boxes overlap on both axes.
func Intersects(a, b layout.Rect) bool {
	return a.X <= b.X+b.W && a.X+a.W >= b.X &&
		a.Y <= b.Y+b.H && a.Y+a.H >= b.Y
}

// Normalize returns the rectangle spanned by two corner points, so a
// drag in any direction yields a box with positive extent.
func Normalize(x1, y1, x2, y2 float64) layout.Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return layout.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// BoxSelect returns the ids of every node whose screen-space box
// intersects the screen-space selection rectangle.
func BoxSelect(res *layout.Result, t Transform, selection layout.Rect) map[string]struct{} {
	hits := make(map[string]struct{})
	for _, n := range res.Nodes {
		if Intersects(t.RectToScreen(n.Bounds()), selection) {
			hits[n.Node.ID] = struct{}{}
		}
	}
	return hits
}

// dropQuartile is the fraction of the target box's height that maps to
// sibling placement at the top and bottom edges.
const dropQuartile = 0.25

// ClassifyDrop classifies a pointer position against a drop target's
// screen box: the top quartile selects placement before the target, the
// bottom quartile after it, everything else inside it. The root always
// classifies as inside since it cannot have siblings.
func ClassifyDrop(box layout.Rect, pointerY float64, isRoot bool) tree.DropPosition {
	if isRoot || box.H <= 0 {
		return tree.PositionInside
	}
	rel := (pointerY - box.Y) / box.H
	switch {
	case rel < dropQuartile:
		return tree.PositionPrev
	case rel > 1-dropQuartile:
		return tree.PositionNext
	default:
		return tree.PositionInside
	}
}

// HitNode returns the topmost node whose screen box contains the given
// screen point, or nil when the point is over empty canvas. Later nodes
// in document order win, matching paint order.
func HitNode(res *layout.Result, t Transform, x, y float64) *layout.LayoutNode {
	var hit *layout.LayoutNode
	for _, n := range res.Nodes {
		b := t.RectToScreen(n.Bounds())
		if x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H {
			hit = n
		}
	}
	return hit
}
