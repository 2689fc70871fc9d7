package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/mindgrove/pkg/export"
	"github.com/kraitsura/mindgrove/pkg/model"
)

// PreviewModel renders the document as a styled markdown outline.
type PreviewModel struct {
	visible bool
	width   int
	height  int
	theme   Theme
	content string
}

// NewPreviewModel creates the preview overlay in its hidden state.
func NewPreviewModel(theme Theme) PreviewModel {
	return PreviewModel{theme: theme}
}

// Show renders the document outline and makes the overlay visible.
func (m *PreviewModel) Show(doc *model.Document) {
	md := export.Markdown(doc)

	wrap := m.width - 12
	if wrap < 40 {
		wrap = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.content = md
	} else if out, err := r.Render(md); err != nil {
		m.content = md
	} else {
		m.content = out
	}
	m.visible = true
}

// Hide makes the overlay invisible.
func (m *PreviewModel) Hide() {
	m.visible = false
}

// IsVisible returns true if the preview is showing.
func (m PreviewModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions.
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the preview overlay.
func (m PreviewModel) View() string {
	if !m.visible {
		return ""
	}

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	hint := m.theme.Renderer.NewStyle().Faint(true).Italic(true).
		Render("[Press any key to close]")

	return boxStyle.Render(m.content + "\n" + hint)
}
