// Package session is the interaction state machine: it owns the live
// tree, the history engine, the selection and drag state, and the
// viewport transform, and dispatches the named intents arriving from the
// input layer. Each intent runs to completion before the next one is
// processed; the session is driven from a single goroutine.
package session

import (
	"github.com/atotto/clipboard"

	"github.com/kraitsura/mindgrove/pkg/history"
	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/tree"
	"github.com/kraitsura/mindgrove/pkg/viewport"
)

// Session wires the tree edit engine, layout engine, history engine and
// viewport together behind the intent surface.
type Session struct {
	root   *model.Node
	hist   *history.Engine
	engine *layout.Engine
	mode   model.LayoutMode
	result *layout.Result

	transform viewport.Transform
	viewportW float64
	viewportH float64
	focusedID string

	sel  *Selection
	drag *DragState
	box  *BoxSelect

	// Collaborator callbacks. OnTreeCommitted fires after every history
	// commit with the new root; OnViewState after every viewport change.
	// Both may be nil.
	OnTreeCommitted func(*model.Node)
	OnViewState     func(model.ViewState)
}

// New creates a session over the given tree. The history window of 0
// selects the default debounce duration.
func New(root *model.Node, engine *layout.Engine, hist *history.Engine) *Session {
	s := &Session{
		root:      root,
		hist:      hist,
		engine:    engine,
		mode:      model.ModeMindmap,
		transform: viewport.Identity(),
		viewportW: 800,
		viewportH: 600,
		sel:       newSelection(),
		focusedID: root.ID,
	}
	s.relayout()
	return s
}

// Root returns the live tree. Callers must treat it as read-only.
func (s *Session) Root() *model.Node { return s.root }

// Layout returns the current layout result.
func (s *Session) Layout() *layout.Result { return s.result }

// Selection returns the selection state.
func (s *Session) Selection() *Selection { return s.sel }

// Drag returns the in-flight drag, or nil.
func (s *Session) Drag() *DragState { return s.drag }

// Box returns the in-flight box selection, or nil.
func (s *Session) Box() *BoxSelect { return s.box }

// Transform returns the current viewport transform.
func (s *Session) Transform() viewport.Transform { return s.transform }

// Mode returns the current layout mode.
func (s *Session) Mode() model.LayoutMode { return s.mode }

// History exposes the history engine for status display.
func (s *Session) History() *history.Engine { return s.hist }

// SetViewportSize records the screen size used for centering and
// pan-into-view.
func (s *Session) SetViewportSize(w, h float64) {
	s.viewportW, s.viewportH = w, h
}

func (s *Session) relayout() {
	s.result = s.engine.Calculate(s.root, s.mode)
}

// commit pushes a structural edit through history, re-lays-out, and
// notifies the persistence collaborator. History always commits before
// the selection updates that depend on the new tree.
func (s *Session) commit(newRoot *model.Node, label string) {
	s.root = newRoot
	s.hist.Commit(newRoot, label)
	s.relayout()
	if s.OnTreeCommitted != nil {
		s.OnTreeCommitted(s.root)
	}
}

func (s *Session) emitViewState() {
	if s.OnViewState != nil {
		s.OnViewState(s.ViewState())
	}
}

// pruneSelection drops selected ids that no longer exist in the tree.
func (s *Session) pruneSelection() {
	for id := range s.sel.IDs() {
		if tree.FindByID(s.root, id) == nil {
			s.sel.Toggle(id)
		}
	}
	if s.sel.EditingID() != "" && tree.FindByID(s.root, s.sel.EditingID()) == nil {
		s.sel.EndEdit()
	}
	if s.focusedID != "" && tree.FindByID(s.root, s.focusedID) == nil {
		s.focusedID = s.root.ID
	}
}

// ── Structural intents ──────────────────────────────────────────────────

// CreateChild appends an empty child under the selected node (or the
// root when nothing is selected) and opens it for editing.
func (s *Session) CreateChild() {
	parentID := s.sel.Single()
	if parentID == "" {
		parentID = s.root.ID
	}
	s.hist.Flush()
	newRoot, newID := tree.AddChild(s.root, parentID)
	if newID == "" {
		return
	}
	s.commit(newRoot, "add child")
	s.sel.BeginEdit(newID)
	s.focusedID = newID
	s.panFocusedIntoView()
}

// CreateSibling inserts an empty sibling after the selected node. No-op
// for the root.
func (s *Session) CreateSibling() {
	afterID := s.sel.Single()
	if afterID == "" {
		return
	}
	s.hist.Flush()
	newRoot, newID := tree.AddSibling(s.root, afterID)
	if newID == "" {
		return
	}
	s.commit(newRoot, "add sibling")
	s.sel.BeginEdit(newID)
	s.focusedID = newID
	s.panFocusedIntoView()
}

// Promote outdents the selected node.
func (s *Session) Promote() {
	id := s.sel.Single()
	if id == "" {
		return
	}
	s.hist.Flush()
	newRoot := tree.Promote(s.root, id)
	if newRoot == s.root {
		return
	}
	s.commit(newRoot, "promote")
}

// Reorder moves the selected node up (delta < 0) or down (delta > 0)
// among its siblings.
func (s *Session) Reorder(delta int) {
	id := s.sel.Single()
	if id == "" {
		return
	}
	s.hist.Flush()
	newRoot := tree.Reorder(s.root, id, delta)
	if newRoot == s.root {
		return
	}
	s.commit(newRoot, "reorder")
}

// Delete removes the selected node's subtree and moves focus to its
// former parent. A pending transient save for the doomed node is
// resolved before the delete so it cannot resurrect afterwards.
func (s *Session) Delete() {
	id := s.sel.Single()
	if id == "" {
		s.BatchDelete()
		return
	}
	s.hist.Flush()
	newRoot, parentID := tree.DeleteNode(s.root, id)
	if parentID == "" {
		return
	}
	if s.sel.EditingID() == id {
		s.sel.EndEdit()
	}
	s.commit(newRoot, "delete")
	s.sel.SetSingle(parentID)
	s.focusedID = parentID
}

// BatchDelete removes every selected subtree; the root always survives.
func (s *Session) BatchDelete() {
	if s.sel.Count() == 0 {
		return
	}
	s.hist.Flush()
	newRoot := tree.BatchDelete(s.root, s.sel.IDs())
	if newRoot == s.root {
		return
	}
	s.commit(newRoot, "delete selection")
	s.sel.Clear()
	s.sel.SetSingle(s.root.ID)
	s.focusedID = s.root.ID
}

// Undo steps history back. Any pending transient window is finalized
// first so it becomes the step being undone, never a ghost write.
func (s *Session) Undo() {
	newRoot, ok := s.hist.Undo()
	if !ok {
		return
	}
	s.root = newRoot
	s.relayout()
	s.pruneSelection()
	if s.OnTreeCommitted != nil {
		s.OnTreeCommitted(s.root)
	}
}

// Redo re-applies the next future entry.
func (s *Session) Redo() {
	newRoot, ok := s.hist.Redo()
	if !ok {
		return
	}
	s.root = newRoot
	s.relayout()
	s.pruneSelection()
	if s.OnTreeCommitted != nil {
		s.OnTreeCommitted(s.root)
	}
}

// ── Text editing ────────────────────────────────────────────────────────

// ToggleEdit enters or leaves text editing on the selected node.
// Leaving is an explicit commit point: the pending transient window is
// flushed.
func (s *Session) ToggleEdit() {
	if s.sel.EditingID() != "" {
		s.sel.EndEdit()
		s.hist.Flush()
		return
	}
	id := s.sel.Single()
	if id == "" || tree.FindByID(s.root, id) == nil {
		return
	}
	s.sel.BeginEdit(id)
}

// SetNodeText applies a keystroke-level text change to the live tree
// immediately and coalesces it into history through the transient
// window. Input beyond the text capacity is clamped at this boundary.
func (s *Session) SetNodeText(id, text string) {
	if tree.FindByID(s.root, id) == nil {
		return
	}
	newRoot := tree.SetText(s.root, id, text)
	if newRoot == s.root {
		return
	}
	s.root = newRoot
	s.relayout()
	s.hist.CommitTransient(newRoot, "edit text")
}

// ── Selection intents ───────────────────────────────────────────────────

// SelectSingle replaces the selection with id.
func (s *Session) SelectSingle(id string) {
	if tree.FindByID(s.root, id) == nil {
		return
	}
	s.sel.SetSingle(id)
	s.focusedID = id
	s.panFocusedIntoView()
}

// SelectToggle flips id's membership in the selection.
func (s *Session) SelectToggle(id string) {
	if tree.FindByID(s.root, id) == nil {
		return
	}
	s.sel.Toggle(id)
	s.focusedID = id
}

// BeginBoxSelect starts a rubber-band selection at a screen point over
// empty canvas.
func (s *Session) BeginBoxSelect(x, y float64) {
	s.box = &BoxSelect{StartX: x, StartY: y, CurX: x, CurY: y}
}

// UpdateBoxSelect extends the rubber band and recomputes the selection
// from the screen-space intersection test on every update.
func (s *Session) UpdateBoxSelect(x, y float64) {
	if s.box == nil {
		return
	}
	s.box.CurX, s.box.CurY = x, y
	rect := viewport.Normalize(s.box.StartX, s.box.StartY, x, y)
	s.sel.Replace(viewport.BoxSelect(s.result, s.transform, rect))
}

// EndBoxSelect finishes the rubber band, keeping the final selection.
func (s *Session) EndBoxSelect() {
	s.box = nil
}

// ── Drag and drop ───────────────────────────────────────────────────────

// DragStart begins dragging a node. The root cannot be dragged.
func (s *Session) DragStart(id string) {
	node := tree.FindByID(s.root, id)
	if node == nil || node.IsRoot {
		return
	}
	if !s.sel.Has(id) {
		s.sel.SetSingle(id)
	}
	s.drag = &DragState{DraggedID: id}
}

// DragOver classifies the current pointer position into a drop target.
// Targets that would cycle the tree (the dragged node itself or any of
// its descendants) are rejected and clear the target.
func (s *Session) DragOver(x, y float64) {
	if s.drag == nil {
		return
	}
	hit := viewport.HitNode(s.result, s.transform, x, y)
	if hit == nil {
		s.drag.Target = nil
		return
	}
	targetID := hit.Node.ID
	if targetID == s.drag.DraggedID || tree.IsDescendant(s.root, targetID, s.drag.DraggedID) {
		s.drag.Target = nil
		return
	}
	box := s.transform.RectToScreen(hit.Bounds())
	pos := viewport.ClassifyDrop(box, y, hit.Node.IsRoot)
	s.drag.Target = &DropTarget{NodeID: targetID, Position: pos}
}

// Drop completes the drag as a move, or as a deep copy with fresh ids
// when asCopy is set. A multi-selection containing the dragged node
// moves as a group into the target.
func (s *Session) Drop(asCopy bool) {
	drag := s.drag
	s.drag = nil
	if drag == nil || drag.Target == nil {
		return
	}
	s.hist.Flush()
	target := drag.Target
	var newRoot *model.Node
	var label string
	switch {
	case asCopy:
		newRoot = tree.CopyNode(s.root, drag.DraggedID, target.NodeID, target.Position)
		label = "copy"
	case s.sel.Count() > 1 && s.sel.Has(drag.DraggedID) && target.Position == tree.PositionInside:
		newRoot = tree.MoveNodes(s.root, s.sel.IDs(), target.NodeID)
		label = "move selection"
	default:
		newRoot = tree.MoveNode(s.root, drag.DraggedID, target.NodeID, target.Position)
		label = "move"
	}
	if newRoot == s.root {
		return
	}
	s.commit(newRoot, label)
	s.pruneSelection()
}

// CancelInteraction resets all transient interaction state (drag, box
// selection, editing focus) without mutating the tree. This is the
// Escape signal.
func (s *Session) CancelInteraction() {
	s.drag = nil
	s.box = nil
	s.sel.EndEdit()
}

// ── Navigation ──────────────────────────────────────────────────────────

// NavDirection is a spatial navigation intent.
type NavDirection int

const (
	NavUp NavDirection = iota
	NavDown
	NavToParent
	NavToChild
)

// Navigate moves the single selection spatially: up/down between
// vertical neighbors, left to the parent, right to the first child.
func (s *Session) Navigate(dir NavDirection) {
	curID := s.sel.Single()
	if curID == "" {
		curID = s.focusedID
	}
	cur, ok := s.result.ByID[curID]
	if !ok {
		s.SelectSingle(s.root.ID)
		return
	}

	var next *layout.LayoutNode
	switch dir {
	case NavToParent:
		next = cur.Parent
	case NavToChild:
		if len(cur.Node.Children) > 0 {
			next = s.result.ByID[cur.Node.Children[0].ID]
		}
	case NavUp:
		next = s.verticalNeighbor(cur, -1)
	case NavDown:
		next = s.verticalNeighbor(cur, +1)
	}
	if next == nil {
		return
	}
	s.SelectSingle(next.Node.ID)
}

// verticalNeighbor finds the adjacent node above or below the current
// one. Tree mode walks document order; mindmap mode walks the nodes of
// the same depth in primary-axis order.
func (s *Session) verticalNeighbor(cur *layout.LayoutNode, step int) *layout.LayoutNode {
	if s.mode == model.ModeTree {
		for i, n := range s.result.Nodes {
			if n == cur {
				j := i + step
				if j < 0 || j >= len(s.result.Nodes) {
					return nil
				}
				return s.result.Nodes[j]
			}
		}
		return nil
	}

	var column []*layout.LayoutNode
	for _, n := range s.result.Nodes {
		if n.Depth == cur.Depth {
			column = append(column, n)
		}
	}
	// Document order equals primary-axis order within a depth for the
	// cursor-based layout, so no sort is needed.
	for i, n := range column {
		if n == cur {
			j := i + step
			if j < 0 || j >= len(column) {
				return nil
			}
			return column[j]
		}
	}
	return nil
}

// ── Viewport intents ────────────────────────────────────────────────────

// Pan shifts the viewport by a screen delta.
func (s *Session) Pan(dx, dy float64) {
	s.transform = s.transform.Pan(dx, dy)
	s.emitViewState()
}

// ZoomAt scales about a screen anchor point.
func (s *Session) ZoomAt(x, y, factor float64) {
	s.transform = s.transform.ZoomAt(x, y, factor)
	s.emitViewState()
}

// CenterOn recenters the viewport on a node (the root when id is
// empty), resetting the zoom.
func (s *Session) CenterOn(id string) {
	if id == "" {
		id = s.root.ID
	}
	t, ok := viewport.CenterOn(s.result, id, s.viewportW/2, s.viewportH/2, false, s.transform)
	if !ok {
		return
	}
	s.transform = t
	s.focusedID = id
	s.emitViewState()
}

// panFocusedIntoView nudges the viewport so the focused node stays
// inside the padded viewport after edits and navigation.
func (s *Session) panFocusedIntoView() {
	t, moved := viewport.PanIntoView(s.result, s.focusedID, s.transform,
		s.viewportW, s.viewportH, s.engine.Config.EdgePadding)
	if moved {
		s.transform = t
		s.emitViewState()
	}
}

// SetLayoutMode switches between mindmap and tree layout.
func (s *Session) SetLayoutMode(mode model.LayoutMode) {
	if !mode.IsValid() || mode == s.mode {
		return
	}
	s.mode = mode
	s.relayout()
	s.emitViewState()
}

// ViewState captures the viewport and focus for persistence.
func (s *Session) ViewState() model.ViewState {
	return model.ViewState{
		TranslateX:    s.transform.TranslateX,
		TranslateY:    s.transform.TranslateY,
		Scale:         s.transform.Scale,
		FocusedNodeID: s.focusedID,
		LayoutMode:    s.mode,
	}
}

// ApplyViewState restores a persisted viewport and focus.
func (s *Session) ApplyViewState(vs model.ViewState) {
	s.transform = viewport.Transform{
		TranslateX: vs.TranslateX,
		TranslateY: vs.TranslateY,
		Scale:      viewport.ClampScale(vs.Scale),
	}
	if vs.LayoutMode.IsValid() {
		s.mode = vs.LayoutMode
	}
	if vs.FocusedNodeID != "" && tree.FindByID(s.root, vs.FocusedNodeID) != nil {
		s.focusedID = vs.FocusedNodeID
		s.sel.SetSingle(vs.FocusedNodeID)
	}
	s.relayout()
}

// ── Clipboard ───────────────────────────────────────────────────────────

// CopyOutline serializes the selection as an indented outline and
// places it on the system clipboard. The outline text is returned for
// status display.
func (s *Session) CopyOutline() (string, error) {
	if s.sel.Count() == 0 {
		return "", nil
	}
	text := tree.OutlineText(s.root, s.sel.IDs())
	if text == "" {
		return "", nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return text, err
	}
	return text, nil
}
