package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Mindgrove Help"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(14)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	b.WriteString(sectionStyle.Render("EDITING") + "\n")
	editing := []struct{ key, desc string }{
		{"tab", "Add child"},
		{"enter", "Add sibling"},
		{"e/F2", "Edit node text"},
		{"del/backspace", "Delete selection"},
		{"shift+tab", "Promote node"},
		{"alt+up/down", "Reorder among siblings"},
		{"u / ctrl+r", "Undo / redo"},
	}
	for _, s := range editing {
		b.WriteString("  " + keyStyle.Render(s.key) + descStyle.Render(s.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("NAVIGATION") + "\n")
	nav := []struct{ key, desc string }{
		{"arrows/hjkl", "Move selection"},
		{"/", "Fuzzy jump to node"},
		{"c", "Center on selection"},
		{"+/-", "Zoom in / out"},
		{"0", "Reset view on root"},
	}
	for _, s := range nav {
		b.WriteString("  " + keyStyle.Render(s.key) + descStyle.Render(s.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("MOUSE") + "\n")
	mouse := []struct{ key, desc string }{
		{"left click", "Select node"},
		{"ctrl+click", "Toggle in selection"},
		{"left drag", "Drag node / rubber band"},
		{"right drag", "Pan the canvas"},
		{"wheel", "Zoom at cursor"},
	}
	for _, s := range mouse {
		b.WriteString("  " + keyStyle.Render(s.key) + descStyle.Render(s.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("VIEW") + "\n")
	views := []struct{ key, desc string }{
		{"m", "Toggle mindmap/tree layout"},
		{"p", "Markdown preview"},
		{"y", "Copy outline to clipboard"},
		{"x", "Export (md+svg+png)"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}
	for _, v := range views {
		b.WriteString("  " + keyStyle.Render(v.key) + descStyle.Render(v.desc) + "\n")
	}

	b.WriteString("\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
