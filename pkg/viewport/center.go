package viewport

import (
	"github.com/kraitsura/mindgrove/pkg/layout"
)

// CenterOn computes the transform that maps the target node's geometric
// center exactly onto the given screen anchor point. The scale resets to
// 1.0 unless preserveScale keeps the current one. Returns the current
// transform unchanged when the id is not in the layout.
func CenterOn(res *layout.Result, id string, anchorX, anchorY float64, preserveScale bool, current Transform) (Transform, bool) {
	n, ok := res.ByID[id]
	if !ok {
		return current, false
	}
	scale := 1.0
	if preserveScale {
		scale = ClampScale(current.Scale)
	}
	cx, cy := n.Center()
	return Transform{
		TranslateX: anchorX - cx*scale,
		TranslateY: anchorY - cy*scale,
		Scale:      scale,
	}, true
}

// PanIntoView returns the minimal translation that brings the focused
// node fully inside the viewport, inset by the given padding. The
// transform is returned unchanged when the node is already visible or
// unknown.
func PanIntoView(res *layout.Result, id string, t Transform, viewportW, viewportH, padding float64) (Transform, bool) {
	n, ok := res.ByID[id]
	if !ok {
		return t, false
	}
	box := t.RectToScreen(n.Bounds())

	var dx, dy float64
	if box.X < padding {
		dx = padding - box.X
	} else if box.X+box.W > viewportW-padding {
		dx = (viewportW - padding) - (box.X + box.W)
	}
	if box.Y < padding {
		dy = padding - box.Y
	} else if box.Y+box.H > viewportH-padding {
		dy = (viewportH - padding) - (box.Y + box.H)
	}
	if dx == 0 && dy == 0 {
		return t, false
	}
	return t.Pan(dx, dy), true
}
