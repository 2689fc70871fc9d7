package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/kraitsura/mindgrove/pkg/model"
)

// JumpItem is one searchable node in the jump overlay.
type JumpItem struct {
	ID    string
	Text  string
	Depth int
}

// JumpModel is the fuzzy jump-to-node overlay.
type JumpModel struct {
	allItems      []JumpItem
	filteredItems []JumpItem

	searchInput   textinput.Model
	selectedIndex int

	width  int
	height int
	theme  Theme

	confirmed    bool
	selectedItem *JumpItem
}

// NewJumpModel builds the overlay from the current tree in document
// order.
func NewJumpModel(root *model.Node, theme Theme) JumpModel {
	ti := textinput.New()
	ti.Placeholder = "Jump to node..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	var items []JumpItem
	var walk func(n *model.Node, depth int)
	walk = func(n *model.Node, depth int) {
		items = append(items, JumpItem{ID: n.ID, Text: firstLine(n.Text), Depth: depth})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)

	return JumpModel{
		allItems:      items,
		filteredItems: items,
		searchInput:   ti,
		theme:         theme,
		width:         60,
		height:        20,
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// SetSize updates the overlay dimensions.
func (m *JumpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 50 {
		inputWidth = 50
	}
	m.searchInput.Width = inputWidth
}

// Update handles a key and reports whether it was consumed.
func (m *JumpModel) Update(key string) (handled bool) {
	switch key {
	case "up", "ctrl+k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return true
	case "down", "ctrl+j":
		if m.selectedIndex < len(m.filteredItems)-1 {
			m.selectedIndex++
		}
		return true
	case "enter":
		if len(m.filteredItems) > 0 && m.selectedIndex < len(m.filteredItems) {
			item := m.filteredItems[m.selectedIndex]
			m.selectedItem = &item
			m.confirmed = true
		}
		return true
	case "esc":
		m.confirmed = false
		m.selectedItem = nil
		return true
	case "backspace":
		if v := m.searchInput.Value(); len(v) > 0 {
			m.searchInput.SetValue(v[:len(v)-1])
			m.filterItems()
		}
		return true
	default:
		if len([]rune(key)) == 1 {
			m.searchInput.SetValue(m.searchInput.Value() + key)
			m.filterItems()
			return true
		}
	}
	return false
}

func (m *JumpModel) filterItems() {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		m.filteredItems = m.allItems
		m.selectedIndex = 0
		return
	}

	searchStrings := make([]string, len(m.allItems))
	for i, item := range m.allItems {
		searchStrings[i] = item.Text
	}

	matches := fuzzy.Find(query, searchStrings)
	m.filteredItems = make([]JumpItem, 0, len(matches))
	for _, match := range matches {
		m.filteredItems = append(m.filteredItems, m.allItems[match.Index])
	}
	m.selectedIndex = 0
}

// IsConfirmed returns true if the user picked a node.
func (m *JumpModel) IsConfirmed() bool {
	return m.confirmed
}

// SelectedItem returns the picked node, or nil.
func (m *JumpModel) SelectedItem() *JumpItem {
	return m.selectedItem
}

// ItemCount returns the number of filtered items, for tests.
func (m *JumpModel) ItemCount() int {
	return len(m.filteredItems)
}

// Reset clears search and selection state for reuse.
func (m *JumpModel) Reset() {
	m.confirmed = false
	m.selectedItem = nil
	m.searchInput.SetValue("")
	m.filteredItems = m.allItems
	m.selectedIndex = 0
}

// View renders the jump overlay centered in the viewport.
func (m *JumpModel) View() string {
	t := m.theme

	boxWidth := 55
	if m.width < 65 {
		boxWidth = m.width - 10
	}
	if boxWidth < 35 {
		boxWidth = 35
	}
	contentWidth := boxWidth - 4

	var lines []string

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	lines = append(lines, titleStyle.Render("Jump to Node"))
	lines = append(lines, "")

	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(contentWidth - 2)
	searchValue := m.searchInput.Value()
	if searchValue == "" {
		searchValue = t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.searchInput.Placeholder)
	}
	lines = append(lines, inputStyle.Render(searchValue))
	lines = append(lines, "")

	maxVisible := m.height - 12
	if maxVisible < 5 {
		maxVisible = 5
	}
	if maxVisible > 15 {
		maxVisible = 15
	}

	if len(m.filteredItems) == 0 {
		emptyStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
		lines = append(lines, emptyStyle.Render("  No matching nodes"))
	} else {
		for i, item := range m.filteredItems {
			if i >= maxVisible {
				moreStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
				lines = append(lines, moreStyle.Render("  ..."))
				break
			}
			lines = append(lines, m.renderItem(item, i == m.selectedIndex, contentWidth))
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
	lines = append(lines, footerStyle.Render("ctrl+j/k: navigate  enter: jump  esc: cancel"))

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		boxStyle.Render(strings.Join(lines, "\n")))
}

func (m *JumpModel) renderItem(item JumpItem, isSelected bool, maxWidth int) string {
	t := m.theme

	prefix := "  "
	if isSelected {
		prefix = "▸ "
	}
	indent := strings.Repeat("  ", item.Depth)

	style := t.Renderer.NewStyle()
	if isSelected {
		style = style.Foreground(t.Primary).Bold(true)
	} else {
		style = style.Foreground(t.Node)
	}

	text := item.Text
	if text == "" {
		text = "(empty)"
	}
	maxTextLen := maxWidth - len(prefix) - len(indent) - 2
	if maxTextLen > 0 && len(text) > maxTextLen {
		text = text[:maxTextLen-1] + "…"
	}
	return style.Render(prefix + indent + text)
}
