package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/mindgrove/pkg/config"
	"github.com/kraitsura/mindgrove/pkg/export"
	"github.com/kraitsura/mindgrove/pkg/history"
	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/session"
	"github.com/kraitsura/mindgrove/pkg/store"
	"github.com/kraitsura/mindgrove/pkg/viewport"
)

// zoomStep is the per-wheel-notch zoom factor.
const zoomStep = 1.1

// ExternalChangeMsg reports that the document file changed on disk
// outside this process.
type ExternalChangeMsg struct{}

// Model is the root Bubble Tea model: the canvas, the status bar, and
// the overlay stack, all driving one session.
type Model struct {
	sess  *session.Session
	doc   *model.Document
	theme Theme
	cfg   config.Config

	docPath string
	db      *store.DB

	width  int
	height int

	editor  EditorModel
	jump    JumpModel
	help    HelpOverlayModel
	preview PreviewModel

	editing  bool
	jumpOpen bool

	// Mouse gesture state. A left press on a node becomes a drag once
	// the pointer moves; a left press on empty canvas becomes a rubber
	// band immediately.
	leftDown      bool
	dragging      bool
	pressedNodeID string
	panning       bool
	lastX, lastY  int

	status string
	// saveErr is shared across model copies so the synchronous save
	// callback can surface failures in the status bar.
	saveErr *string
}

// NewModel builds the root model and wires the persistence callbacks.
// db may be nil when view-state persistence is disabled.
func NewModel(doc *model.Document, docPath string, db *store.DB, cfg config.Config) Model {
	theme := ThemeByName(cfg.Theme, lipgloss.DefaultRenderer())

	engine := layout.NewEngine(cfg.Layout, layout.CellMeasurer{CellWidth: CellW})
	hist := history.New(doc.Root, cfg.DebounceWindow())
	sess := session.New(doc.Root, engine, hist)

	m := Model{
		sess:    sess,
		doc:     doc,
		theme:   theme,
		cfg:     cfg,
		docPath: docPath,
		db:      db,
		editor:  NewEditorModel(theme),
		jump:    NewJumpModel(doc.Root, theme),
		help:    NewHelpOverlayModel(theme),
		preview: NewPreviewModel(theme),
		saveErr: new(string),
	}
	m.wireCallbacks()

	if db != nil && docPath != "" {
		if vs, err := db.LoadViewState(docPath); err == nil {
			sess.ApplyViewState(vs)
		}
	}
	return m
}

func (m *Model) wireCallbacks() {
	docPath, db, doc, saveErr := m.docPath, m.db, m.doc, m.saveErr
	m.sess.OnTreeCommitted = func(root *model.Node) {
		doc.Root = root
		if docPath == "" {
			return
		}
		if err := store.SaveDocument(doc, docPath); err != nil {
			*saveErr = "save failed: " + err.Error()
		} else {
			*saveErr = ""
		}
	}
	if db != nil && docPath != "" {
		m.sess.OnViewState = func(vs model.ViewState) {
			db.SaveViewState(docPath, vs)
		}
	}
}

// Session exposes the session for white-box tests.
func (m Model) Session() *session.Session { return m.sess }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sess.SetViewportSize(float64(msg.Width)*CellW, float64(msg.Height-1)*CellH)
		m.editor.SetSize(msg.Width, msg.Height)
		m.jump.SetSize(msg.Width, msg.Height)
		m.help.SetSize(msg.Width, msg.Height)
		m.preview.SetSize(msg.Width, msg.Height)
		return m, nil

	case ExternalChangeMsg:
		m.status = "document changed on disk, press R to reload"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays consume keys first.
	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if m.preview.IsVisible() {
		m.preview.Hide()
		return m, nil
	}
	if m.jumpOpen {
		if m.jump.Update(msg.String()) {
			if m.jump.IsConfirmed() {
				if item := m.jump.SelectedItem(); item != nil {
					m.sess.SelectSingle(item.ID)
					m.sess.CenterOn(item.ID)
				}
				m.jumpOpen = false
				m.jump.Reset()
			} else if msg.String() == "esc" {
				m.jumpOpen = false
				m.jump.Reset()
			}
		}
		return m, nil
	}
	if m.editing {
		return m.handleEditorKey(msg)
	}

	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.help.Toggle()
	case "tab":
		m.sess.CreateChild()
		return m.maybeOpenEditor()
	case "enter":
		m.sess.CreateSibling()
		return m.maybeOpenEditor()
	case "e", "f2":
		m.sess.ToggleEdit()
		return m.maybeOpenEditor()
	case "delete", "backspace":
		m.sess.Delete()
	case "shift+tab":
		m.sess.Promote()
	case "alt+up":
		m.sess.Reorder(-1)
	case "alt+down":
		m.sess.Reorder(+1)
	case "u":
		m.sess.Undo()
	case "ctrl+r":
		m.sess.Redo()
	case "up", "k":
		m.sess.Navigate(session.NavUp)
	case "down", "j":
		m.sess.Navigate(session.NavDown)
	case "left", "h":
		m.sess.Navigate(session.NavToParent)
	case "right", "l":
		m.sess.Navigate(session.NavToChild)
	case "/":
		m.jump = NewJumpModel(m.sess.Root(), m.theme)
		m.jump.SetSize(m.width, m.height)
		m.jumpOpen = true
	case "c":
		m.sess.CenterOn(m.sess.Selection().Single())
	case "0":
		m.sess.CenterOn("")
	case "+", "=":
		m.sess.ZoomAt(float64(m.width)*CellW/2, float64(m.height)*CellH/2, zoomStep)
	case "-":
		m.sess.ZoomAt(float64(m.width)*CellW/2, float64(m.height)*CellH/2, 1/zoomStep)
	case "m":
		if m.sess.Mode() == model.ModeMindmap {
			m.sess.SetLayoutMode(model.ModeTree)
		} else {
			m.sess.SetLayoutMode(model.ModeMindmap)
		}
	case "p":
		m.syncDoc()
		m.preview.Show(m.doc)
	case "y":
		text, err := m.sess.CopyOutline()
		switch {
		case err != nil:
			m.status = "clipboard unavailable"
		case text != "":
			m.status = "outline copied"
		}
	case "x":
		m.status = m.exportBundle()
	case "R":
		m.status = m.reload()
	case "esc":
		m.sess.CancelInteraction()
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	// Live-apply every keystroke; the debounce window coalesces the
	// burst into one history entry.
	m.sess.SetNodeText(m.editor.NodeID(), m.editor.Value())

	if m.editor.IsDone() {
		m.editing = false
		m.sess.ToggleEdit()
		m.editor.Reset()
	}
	return m, cmd
}

// maybeOpenEditor opens the editor overlay when a session intent left a
// node in editing state.
func (m Model) maybeOpenEditor() (tea.Model, tea.Cmd) {
	id := m.sess.Selection().EditingID()
	if id == "" {
		m.editing = false
		return m, nil
	}
	node := m.sess.Layout().ByID[id]
	text := ""
	if node != nil {
		text = node.Node.Text
	}
	m.editing = true
	return m, m.editor.Open(id, text)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editing || m.jumpOpen || m.help.IsVisible() || m.preview.IsVisible() {
		return m, nil
	}
	px, py := float64(msg.X)*CellW, float64(msg.Y)*CellH

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.sess.ZoomAt(px, py, zoomStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.sess.ZoomAt(px, py, 1/zoomStep)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.leftDown = true
			hit := viewport.HitNode(m.sess.Layout(), m.sess.Transform(), px, py)
			if hit == nil {
				m.pressedNodeID = ""
				m.sess.BeginBoxSelect(px, py)
			} else if msg.Ctrl {
				m.pressedNodeID = ""
				m.sess.SelectToggle(hit.Node.ID)
			} else {
				m.pressedNodeID = hit.Node.ID
			}
		case tea.MouseButtonRight, tea.MouseButtonMiddle:
			m.panning = true
			m.lastX, m.lastY = msg.X, msg.Y
		}

	case tea.MouseActionMotion:
		switch {
		case m.panning:
			m.sess.Pan(float64(msg.X-m.lastX)*CellW, float64(msg.Y-m.lastY)*CellH)
			m.lastX, m.lastY = msg.X, msg.Y
		case m.leftDown && m.pressedNodeID != "":
			if !m.dragging {
				m.sess.DragStart(m.pressedNodeID)
				m.dragging = true
			}
			m.sess.DragOver(px, py)
		case m.leftDown:
			m.sess.UpdateBoxSelect(px, py)
		}

	case tea.MouseActionRelease:
		switch {
		case m.panning:
			m.panning = false
		case m.dragging:
			m.sess.Drop(msg.Alt)
			m.dragging = false
			m.leftDown = false
			m.pressedNodeID = ""
		case m.leftDown && m.pressedNodeID != "":
			// Press and release without motion is a click.
			m.sess.SelectSingle(m.pressedNodeID)
			m.leftDown = false
			m.pressedNodeID = ""
		case m.leftDown:
			m.sess.EndBoxSelect()
			m.leftDown = false
		}
	}
	return m, nil
}

// syncDoc refreshes the document wrapper from the live tree.
func (m *Model) syncDoc() {
	m.doc.Root = m.sess.Root()
}

func (m Model) exportBundle() string {
	if m.docPath == "" {
		return "no document path to export next to"
	}
	m.syncDoc()
	dir := filepath.Join(filepath.Dir(m.docPath), "export")
	if err := export.Bundle(dir, m.doc, m.sess.Layout()); err != nil {
		return "export failed: " + err.Error()
	}
	return "exported to " + dir
}

func (m *Model) reload() string {
	if m.docPath == "" {
		return ""
	}
	doc, err := store.LoadDocument(m.docPath)
	if err != nil {
		return "reload failed: " + err.Error()
	}
	vs := m.sess.ViewState()
	m.doc = doc

	engine := layout.NewEngine(m.cfg.Layout, layout.CellMeasurer{CellWidth: CellW})
	hist := history.New(doc.Root, m.cfg.DebounceWindow())
	m.sess = session.New(doc.Root, engine, hist)
	m.sess.SetViewportSize(float64(m.width)*CellW, float64(m.height-1)*CellH)
	m.sess.ApplyViewState(vs)
	m.wireCallbacks()
	return "reloaded from disk"
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	canvasH := m.height - 1
	canvas := NewCanvas(m.width, canvasH)
	DrawScene(canvas, m.sess)
	scene := canvas.Render(m.theme)

	var overlay string
	switch {
	case m.help.IsVisible():
		overlay = m.help.View()
	case m.preview.IsVisible():
		overlay = m.preview.View()
	case m.jumpOpen:
		overlay = m.jump.View()
	case m.editing:
		overlay = m.editor.View()
	}
	if overlay != "" {
		scene = lipgloss.Place(m.width, canvasH, lipgloss.Center, lipgloss.Center, overlay)
	}

	return scene + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	t := m.theme
	past, future := m.sess.History().Depth()

	parts := []string{
		RenderModeBadge(t, string(m.sess.Mode())),
		t.Renderer.NewStyle().Foreground(t.Node).Bold(true).Render(m.doc.Title),
		t.Renderer.NewStyle().Foreground(t.Subtext).
			Render(fmt.Sprintf("%d nodes", m.sess.Root().Count())),
		RenderHistoryBadge(t, past, future),
	}
	if n := m.sess.Selection().Count(); n > 1 {
		parts = append(parts, t.Renderer.NewStyle().Foreground(t.Rubber).
			Render(fmt.Sprintf("%d selected", n)))
	}
	if m.status != "" {
		parts = append(parts, t.Renderer.NewStyle().Foreground(t.Secondary).Render(m.status))
	}
	if m.saveErr != nil && *m.saveErr != "" {
		parts = append(parts, t.Renderer.NewStyle().Foreground(ColorDanger).Render(*m.saveErr))
	}
	parts = append(parts, t.Renderer.NewStyle().Faint(true).Render("? for help"))

	bar := strings.Join(parts, "  ")
	return t.Renderer.NewStyle().Width(m.width).Render(bar)
}
