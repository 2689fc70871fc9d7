package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Fixed chrome colors outside the adaptive theme
// ══════════════════════════════════════════════════════════════════════════════

// ColorDanger marks failures in the status bar regardless of theme.
var ColorDanger = lipgloss.Color("#FF5555")

// ══════════════════════════════════════════════════════════════════════════════
// STATUS BAR - Mode and history badges
// ══════════════════════════════════════════════════════════════════════════════

// RenderModeBadge returns a styled badge for the active layout mode.
func RenderModeBadge(t Theme, mode string) string {
	label := "MAP"
	if mode == "tree" {
		label = "TREE"
	}
	return t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render("[" + label + "]")
}

// RenderHistoryBadge shows the undo/redo depth, like "↶3 ↷1".
func RenderHistoryBadge(t Theme, past, future int) string {
	return t.Renderer.NewStyle().
		Foreground(t.Subtext).
		Render("↶" + strconv.Itoa(past) + " ↷" + strconv.Itoa(future))
}
