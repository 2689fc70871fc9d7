package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/session"
	"github.com/kraitsura/mindgrove/pkg/tree"
	"github.com/kraitsura/mindgrove/pkg/viewport"
)

// Logical pixels per terminal cell. The horizontal factor matches the
// cell width the layout measurer assumes, so node boxes come out at the
// width the text needs.
const (
	CellW = 8.0
	CellH = 16.0
)

// cellClass tags each canvas cell with a color role. Draw order decides
// overlap: links first, node boxes over them, interaction overlays last.
type cellClass uint8

const (
	classBlank cellClass = iota
	classLink
	classNode
	classNodeSelected
	classNodeEditing
	classDropHint
	classRubber
)

// Canvas is a cell grid the scene is rasterized into.
type Canvas struct {
	width, height int
	runes         [][]rune
	class         [][]cellClass
}

// NewCanvas allocates a blank canvas of the given cell size.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.class = make([][]cellClass, height)
	for y := 0; y < height; y++ {
		c.runes[y] = make([]rune, width)
		c.class[y] = make([]cellClass, width)
		for x := 0; x < width; x++ {
			c.runes[y][x] = ' '
		}
	}
	return c
}

func (c *Canvas) set(x, y int, r rune, cl cellClass) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.class[y][x] = cl
}

// line draws a straight run of cells. Pure horizontal and vertical runs
// get box-drawing runes; anything else falls back to dots.
func (c *Canvas) line(x0, y0, x1, y1 int, cl cellClass) {
	dx, dy := x1-x0, y1-y0
	adx, ady := abs(dx), abs(dy)
	r := '·'
	if ady == 0 {
		r = '─'
	} else if adx == 0 {
		r = '│'
	}
	steps := adx
	if ady > steps {
		steps = ady
	}
	if steps == 0 {
		c.set(x0, y0, r, cl)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		c.set(x, y, r, cl)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawScene rasterizes the session's current layout, selection, drag
// and rubber band into the canvas.
func DrawScene(c *Canvas, s *session.Session) {
	res := s.Layout()
	t := s.Transform()

	for _, link := range res.Links {
		c.drawLink(link, t)
	}
	for _, n := range res.Nodes {
		c.drawNode(n, t, nodeClass(n, s), false)
	}
	if drag := s.Drag(); drag != nil && drag.Target != nil {
		c.drawDropHint(res, t, drag.Target)
	}
	if box := s.Box(); box != nil {
		c.drawRubberBand(box)
	}
}

func nodeClass(n *layout.LayoutNode, s *session.Session) cellClass {
	id := n.Node.ID
	switch {
	case s.Selection().EditingID() == id:
		return classNodeEditing
	case s.Selection().Has(id):
		return classNodeSelected
	default:
		return classNode
	}
}

// bezierSteps is the sampling resolution for curved links. Terminal
// cells are coarse, so a handful of samples per curve is plenty.
const bezierSteps = 24

func (c *Canvas) drawLink(link layout.Link, t viewport.Transform) {
	var penX, penY int
	for _, seg := range link.Path {
		sx, sy := t.ToScreen(seg.To.X, seg.To.Y)
		tx, ty := int(sx/CellW), int(sy/CellH)
		switch seg.Op {
		case layout.MoveTo:
			penX, penY = tx, ty
		case layout.LineTo:
			c.line(penX, penY, tx, ty, classLink)
			penX, penY = tx, ty
		case layout.CubicTo:
			c1x, c1y := t.ToScreen(seg.C1.X, seg.C1.Y)
			c2x, c2y := t.ToScreen(seg.C2.X, seg.C2.Y)
			px, py := float64(penX), float64(penY)
			x3, y3 := c1x/CellW, c1y/CellH
			x4, y4 := c2x/CellW, c2y/CellH
			lastX, lastY := penX, penY
			for i := 1; i <= bezierSteps; i++ {
				u := float64(i) / bezierSteps
				x := cubic(px, x3, x4, float64(tx), u)
				y := cubic(py, y3, y4, float64(ty), u)
				c.line(lastX, lastY, int(x), int(y), classLink)
				lastX, lastY = int(x), int(y)
			}
			penX, penY = tx, ty
		}
	}
}

func cubic(p0, p1, p2, p3, u float64) float64 {
	v := 1 - u
	return v*v*v*p0 + 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u*p3
}

func (c *Canvas) drawNode(n *layout.LayoutNode, t viewport.Transform, cl cellClass, hintOnly bool) {
	r := t.RectToScreen(n.Bounds())
	x0, y0 := int(r.X/CellW), int(r.Y/CellH)
	w, h := int(r.W/CellW), int(r.H/CellH)
	if w < 4 {
		w = 4
	}
	if h < 3 {
		h = 3
	}
	x1, y1 := x0+w-1, y0+h-1
	if x1 < 0 || y1 < 0 || x0 >= c.width || y0 >= c.height {
		return
	}

	c.set(x0, y0, '╭', cl)
	c.set(x1, y0, '╮', cl)
	c.set(x0, y1, '╰', cl)
	c.set(x1, y1, '╯', cl)
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', cl)
		c.set(x, y1, '─', cl)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', cl)
		c.set(x1, y, '│', cl)
	}
	if hintOnly {
		return
	}

	inner := w - 2
	lines := strings.Split(n.Node.Text, "\n")
	for i, line := range lines {
		y := y0 + 1 + i
		if y >= y1 {
			break
		}
		text := runewidth.Truncate(line, inner, "…")
		x := x0 + 1
		for _, rn := range text {
			if x >= x1 {
				break
			}
			c.set(x, y, rn, cl)
			x += runewidth.RuneWidth(rn)
		}
		for ; x < x1; x++ {
			c.set(x, y, ' ', cl)
		}
	}
	for y := y0 + 1 + len(lines); y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			c.set(x, y, ' ', cl)
		}
	}
}

// drawDropHint marks the candidate landing spot: a re-bordered box for
// "inside", an insertion line above or below for the sibling positions.
func (c *Canvas) drawDropHint(res *layout.Result, t viewport.Transform, target *session.DropTarget) {
	n, ok := res.ByID[target.NodeID]
	if !ok {
		return
	}
	r := t.RectToScreen(n.Bounds())
	x0, y0 := int(r.X/CellW), int(r.Y/CellH)
	w, h := int(r.W/CellW), int(r.H/CellH)
	if w < 4 {
		w = 4
	}
	if h < 3 {
		h = 3
	}

	switch target.Position {
	case tree.PositionInside:
		c.drawNode(n, t, classDropHint, true)
	case tree.PositionPrev:
		c.line(x0, y0-1, x0+w-1, y0-1, classDropHint)
	case tree.PositionNext:
		c.line(x0, y0+h, x0+w-1, y0+h, classDropHint)
	}
}

func (c *Canvas) drawRubberBand(box *session.BoxSelect) {
	r := viewport.Normalize(box.StartX, box.StartY, box.CurX, box.CurY)
	x0, y0 := int(r.X/CellW), int(r.Y/CellH)
	x1, y1 := int((r.X+r.W)/CellW), int((r.Y+r.H)/CellH)
	c.line(x0, y0, x1, y0, classRubber)
	c.line(x0, y1, x1, y1, classRubber)
	c.line(x0, y0, x0, y1, classRubber)
	c.line(x1, y0, x1, y1, classRubber)
}

// Render flushes the canvas to a styled string, one style run per
// stretch of same-class cells to keep the frame small.
func (c *Canvas) Render(t Theme) string {
	styles := map[cellClass]lipgloss.Style{
		classLink:         t.Renderer.NewStyle().Foreground(t.Link),
		classNode:         t.Renderer.NewStyle().Foreground(t.Node),
		classNodeSelected: t.Renderer.NewStyle().Foreground(t.NodeSelected).Bold(true),
		classNodeEditing:  t.Renderer.NewStyle().Foreground(t.NodeEditing).Bold(true),
		classDropHint:     t.Renderer.NewStyle().Foreground(t.DropHint).Bold(true),
		classRubber:       t.Renderer.NewStyle().Foreground(t.Rubber),
	}

	var b strings.Builder
	for y := 0; y < c.height; y++ {
		runStart := 0
		runClass := c.class[y][0]
		flush := func(end int) {
			segment := string(c.runes[y][runStart:end])
			if runClass == classBlank {
				b.WriteString(segment)
			} else {
				b.WriteString(styles[runClass].Render(segment))
			}
		}
		for x := 1; x < c.width; x++ {
			if c.class[y][x] != runClass {
				flush(x)
				runStart = x
				runClass = c.class[y][x]
			}
		}
		flush(c.width)
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PlainText returns the unstyled cell contents, row by row. Used by
// tests to assert on scene geometry without ANSI noise.
func (c *Canvas) PlainText() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		b.WriteString(strings.TrimRight(string(c.runes[y]), " "))
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CellAt reports the rune at a cell, for tests.
func (c *Canvas) CellAt(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.runes[y][x]
}
