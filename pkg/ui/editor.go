package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/mindgrove/pkg/model"
)

// EditorModel is the node text editor modal. The entered text is applied
// to the live tree on every keystroke; closing the editor is the commit
// point.
type EditorModel struct {
	textarea textarea.Model
	nodeID   string
	width    int
	height   int
	theme    Theme

	done bool
}

// NewEditorModel creates the editor in its closed state.
func NewEditorModel(theme Theme) EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Node text..."
	ta.CharLimit = model.MaxTextLen
	ta.SetWidth(50)
	ta.SetHeight(4)

	return EditorModel{
		textarea: ta,
		theme:    theme,
	}
}

// Open focuses the editor on a node, seeding it with the current text.
func (m *EditorModel) Open(nodeID, text string) tea.Cmd {
	m.nodeID = nodeID
	m.done = false
	m.textarea.SetValue(text)
	m.textarea.CursorEnd()
	return m.textarea.Focus()
}

// Update handles input while the editor is open.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+s":
			m.done = true
			m.textarea.Blur()
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the editor modal.
func (m EditorModel) View() string {
	var b strings.Builder

	width := 56
	if m.width > 0 && m.width < 66 {
		width = m.width - 10
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Width(width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render("Edit Node"))
	b.WriteString("\n\n")

	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[Esc/Ctrl+S] Done  [Enter] New line"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(b.String())
}

// SetSize sets the modal dimensions.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	taWidth := width - 20
	if taWidth < 30 {
		taWidth = 30
	}
	if taWidth > 60 {
		taWidth = 60
	}
	m.textarea.SetWidth(taWidth)
}

// Value returns the current editor text.
func (m EditorModel) Value() string {
	return m.textarea.Value()
}

// NodeID returns the node being edited.
func (m EditorModel) NodeID() string {
	return m.nodeID
}

// IsDone reports that the editor was closed.
func (m EditorModel) IsDone() bool {
	return m.done
}

// Reset prepares the editor for reuse.
func (m *EditorModel) Reset() {
	m.done = false
	m.nodeID = ""
	m.textarea.Reset()
}
