package session

import (
	"github.com/kraitsura/mindgrove/pkg/tree"
)

// Selection is the transient multi-select and edit-focus state. The
// invariants: the editing node is always the sole selected node, and a
// multi-selection never has an editing node.
type Selection struct {
	selected  map[string]struct{}
	editingID string
}

func newSelection() *Selection {
	return &Selection{selected: make(map[string]struct{})}
}

// IDs returns the selected id set. Callers must not mutate it.
func (s *Selection) IDs() map[string]struct{} {
	return s.selected
}

// Count returns the selection size.
func (s *Selection) Count() int {
	return len(s.selected)
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Single returns the sole selected id, or "" when the selection is
// empty or multiple.
func (s *Selection) Single() string {
	if len(s.selected) != 1 {
		return ""
	}
	for id := range s.selected {
		return id
	}
	return ""
}

// EditingID returns the node being text-edited, or "".
func (s *Selection) EditingID() string {
	return s.editingID
}

// SetSingle replaces the selection with one id and ends any edit of a
// different node.
func (s *Selection) SetSingle(id string) {
	s.selected = map[string]struct{}{id: {}}
	if s.editingID != "" && s.editingID != id {
		s.editingID = ""
	}
}

// Toggle flips id's membership. Growing past one node ends editing.
func (s *Selection) Toggle(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	if len(s.selected) != 1 {
		s.editingID = ""
	}
}

// Replace swaps in a whole id set (box selection result).
func (s *Selection) Replace(ids map[string]struct{}) {
	if ids == nil {
		ids = make(map[string]struct{})
	}
	s.selected = ids
	if len(s.selected) != 1 {
		s.editingID = ""
	} else if s.editingID != "" && !s.Has(s.editingID) {
		s.editingID = ""
	}
}

// Clear empties the selection and ends editing.
func (s *Selection) Clear() {
	s.selected = make(map[string]struct{})
	s.editingID = ""
}

// BeginEdit focuses id for text editing, collapsing the selection to it.
func (s *Selection) BeginEdit(id string) {
	s.SetSingle(id)
	s.editingID = id
}

// EndEdit leaves text-editing mode, keeping the selection.
func (s *Selection) EndEdit() {
	s.editingID = ""
}

// DropTarget is the candidate landing spot of an active drag.
type DropTarget struct {
	NodeID   string
	Position tree.DropPosition
}

// DragState tracks an in-flight node drag.
type DragState struct {
	DraggedID string
	Target    *DropTarget
}

// BoxSelect tracks an in-flight rubber-band selection in screen space.
type BoxSelect struct {
	StartX, StartY float64
	CurX, CurY     float64
}
