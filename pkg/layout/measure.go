// Package layout converts a node tree into per-node screen geometry
// under two modes: "mindmap" (depth-staged horizontal layout with curved
// links) and "tree" (indented vertical list with orthogonal links). The
// layout pass is a pure function of the tree, the mode, and the text
// measurer; running it twice on the same inputs yields identical
// positions.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measurer reports the rendered width of a single line of text. The
// engine handles multi-line text itself by measuring the widest line.
type Measurer interface {
	TextWidth(line string) float64
}

// CellMeasurer measures text in terminal cells via go-runewidth, scaled
// by a per-cell width. This is the production measurer for the TUI
// renderer; wide runes count as two cells.
type CellMeasurer struct {
	CellWidth float64
}

// TextWidth implements Measurer.
func (m CellMeasurer) TextWidth(line string) float64 {
	w := m.CellWidth
	if w <= 0 {
		w = DefaultCellWidth
	}
	return float64(runewidth.StringWidth(line)) * w
}

// FixedMeasurer returns a constant width per rune. It backs tests and
// the degraded path when no measurer is available.
type FixedMeasurer struct {
	RuneWidth float64
}

// TextWidth implements Measurer.
func (m FixedMeasurer) TextWidth(line string) float64 {
	w := m.RuneWidth
	if w <= 0 {
		w = DefaultCellWidth
	}
	return float64(len([]rune(line))) * w
}

// DefaultCellWidth is the fallback per-cell width in logical units.
const DefaultCellWidth = 8

// measureText returns the widest line and the line count of s.
func measureText(m Measurer, s string) (maxLineWidth float64, lines int) {
	if m == nil {
		m = FixedMeasurer{}
	}
	split := strings.Split(s, "\n")
	for _, line := range split {
		if w := m.TextWidth(line); w > maxLineWidth {
			maxLineWidth = w
		}
	}
	return maxLineWidth, len(split)
}
