// Package viewport maintains the pan/zoom transform between logical
// layout space and screen space, and implements the hit-testing that
// depends on it: box selection, drop-position classification, and the
// centering and pan-into-view calculations.
package viewport

import (
	"github.com/kraitsura/mindgrove/pkg/layout"
)

// Scale bounds for the zoom gesture.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// Transform maps logical layout coordinates to screen pixels:
// screen = logical*Scale + Translate.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1.0}
}

// ClampScale constrains s to the permitted zoom range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ToScreen converts a logical point to screen space.
func (t Transform) ToScreen(x, y float64) (float64, float64) {
	return x*t.Scale + t.TranslateX, y*t.Scale + t.TranslateY
}

// ToLogical converts a screen point to logical space.
func (t Transform) ToLogical(x, y float64) (float64, float64) {
	return (x - t.TranslateX) / t.Scale, (y - t.TranslateY) / t.Scale
}

// RectToScreen projects a logical box to screen space.
func (t Transform) RectToScreen(r layout.Rect) layout.Rect {
	x, y := t.ToScreen(r.X, r.Y)
	return layout.Rect{X: x, Y: y, W: r.W * t.Scale, H: r.H * t.Scale}
}

// Pan shifts the viewport by a screen-space delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t
}

// ZoomAt adjusts the scale by factor, anchored at the given screen
// point: the logical point under the cursor stays under the cursor.
func (t Transform) ZoomAt(screenX, screenY, factor float64) Transform {
	newScale := ClampScale(t.Scale * factor)
	if newScale == t.Scale {
		return t
	}
	ratio := newScale / t.Scale
	t.TranslateX = screenX - (screenX-t.TranslateX)*ratio
	t.TranslateY = screenY - (screenY-t.TranslateY)*ratio
	t.Scale = newScale
	return t
}
