package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the color roles the canvas and overlays draw with. All
// styles are created through the Renderer so output degrades correctly
// on dumb terminals.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Chrome
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	// Canvas roles
	Node         lipgloss.AdaptiveColor
	NodeSelected lipgloss.AdaptiveColor
	NodeEditing  lipgloss.AdaptiveColor
	Link         lipgloss.AdaptiveColor
	DropHint     lipgloss.AdaptiveColor
	Rubber       lipgloss.AdaptiveColor
}

// DraculaTheme is the default palette.
func DraculaTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer:     r,
		Primary:      lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"},
		Secondary:    lipgloss.AdaptiveColor{Light: "#475569", Dark: "#6272A4"},
		Subtext:      lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#BFBFBF"},
		Border:       lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#44475A"},
		Node:         lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#F8F8F2"},
		NodeSelected: lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"},
		NodeEditing:  lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#8BE9FD"},
		Link:         lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#6272A4"},
		DropHint:     lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#50FA7B"},
		Rubber:       lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FFB86C"},
	}
}

// NordTheme is the alternate palette selectable from the config file.
func NordTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer:     r,
		Primary:      lipgloss.AdaptiveColor{Light: "#5E81AC", Dark: "#88C0D0"},
		Secondary:    lipgloss.AdaptiveColor{Light: "#4C566A", Dark: "#81A1C1"},
		Subtext:      lipgloss.AdaptiveColor{Light: "#4C566A", Dark: "#D8DEE9"},
		Border:       lipgloss.AdaptiveColor{Light: "#D8DEE9", Dark: "#3B4252"},
		Node:         lipgloss.AdaptiveColor{Light: "#2E3440", Dark: "#ECEFF4"},
		NodeSelected: lipgloss.AdaptiveColor{Light: "#5E81AC", Dark: "#88C0D0"},
		NodeEditing:  lipgloss.AdaptiveColor{Light: "#8FBCBB", Dark: "#8FBCBB"},
		Link:         lipgloss.AdaptiveColor{Light: "#A3ABB8", Dark: "#4C566A"},
		DropHint:     lipgloss.AdaptiveColor{Light: "#A3BE8C", Dark: "#A3BE8C"},
		Rubber:       lipgloss.AdaptiveColor{Light: "#D08770", Dark: "#D08770"},
	}
}

// ThemeByName resolves a config theme name, defaulting to dracula.
func ThemeByName(name string, r *lipgloss.Renderer) Theme {
	switch name {
	case "nord":
		return NordTheme(r)
	default:
		return DraculaTheme(r)
	}
}
