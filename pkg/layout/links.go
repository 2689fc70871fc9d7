package layout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kraitsura/mindgrove/pkg/model"
)

// SegmentOp is a path drawing command.
type SegmentOp int

const (
	MoveTo SegmentOp = iota
	LineTo
	CubicTo
)

// Segment is one path command. C1 and C2 are only meaningful for
// CubicTo.
type Segment struct {
	Op     SegmentOp
	To     r2.Vec
	C1, C2 r2.Vec
}

// Link is the rendered connection between a parent and one child.
type Link struct {
	ParentID string
	ChildID  string
	Path     []Segment
}

// buildLinks produces one path per parent-child edge. Mindmap mode uses
// a cubic Bezier S-curve from the parent's right edge to the child's
// left edge; tree mode uses an orthogonal L: down from below the
// parent's text block, then right into the child's left edge.
func (e *Engine) buildLinks(res *Result, mode model.LayoutMode) {
	for _, n := range res.Nodes {
		if n.Parent == nil {
			continue
		}
		p := n.Parent
		var path []Segment
		if mode == model.ModeTree {
			railX := p.Y + e.Config.TreeIndent/2
			start := r2.Vec{X: railX, Y: p.X + p.ActualHeight/2}
			corner := r2.Vec{X: railX, Y: n.X}
			end := r2.Vec{X: n.Y, Y: n.X}
			path = []Segment{
				{Op: MoveTo, To: start},
				{Op: LineTo, To: corner},
				{Op: LineTo, To: end},
			}
		} else {
			start := r2.Vec{X: p.Y + p.Width, Y: p.X}
			end := r2.Vec{X: n.Y, Y: n.X}
			mid := (start.X + end.X) / 2
			path = []Segment{
				{Op: MoveTo, To: start},
				{
					Op: CubicTo,
					C1: r2.Vec{X: mid, Y: start.Y},
					C2: r2.Vec{X: mid, Y: end.Y},
					To: end,
				},
			}
		}
		res.Links = append(res.Links, Link{ParentID: p.Node.ID, ChildID: n.Node.ID, Path: path})
	}
}
