// Package tree implements the structural-edit algebra over the mind map
// node tree. Every mutator is a pure function: it takes a tree root and
// returns a new root, sharing untouched subtrees with the input. Invalid
// operations (unknown ids, edits that would detach or cycle the root)
// return the original root unchanged instead of failing.
package tree

import (
	"github.com/kraitsura/mindgrove/pkg/model"
)

// DropPosition says where a dragged node lands relative to its target.
type DropPosition string

const (
	PositionInside DropPosition = "inside"
	PositionPrev   DropPosition = "prev"
	PositionNext   DropPosition = "next"
)

// FindByID returns the first node with the given id in depth-first order,
// or nil if the id is not present.
func FindByID(root *model.Node, id string) *model.Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the node whose immediate children contain id, or nil
// if id is the root or not present.
func FindParent(root *model.Node, id string) *model.Node {
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c.ID == id {
			return root
		}
		if found := FindParent(c, id); found != nil {
			return found
		}
	}
	return nil
}

// IsDescendant reports whether candidateID lies within the subtree rooted
// at ancestorID (a node counts as its own descendant). This is the
// mandatory cycle check before every move and reparent.
func IsDescendant(root *model.Node, candidateID, ancestorID string) bool {
	ancestor := FindByID(root, ancestorID)
	if ancestor == nil {
		return false
	}
	return FindByID(ancestor, candidateID) != nil
}

// shallowWith returns a copy of n with the given children slice. The
// untouched children keep their identity, so unmodified subtrees are
// shared between the old and new tree.
func shallowWith(n *model.Node, children []*model.Node) *model.Node {
	return &model.Node{ID: n.ID, Text: n.Text, Children: children, IsRoot: n.IsRoot}
}

// rewrite rebuilds the path from root to the node with targetID, applying
// fn to that node. Returns the (possibly new) root and whether the target
// was found. Subtrees off the rebuilt path are shared.
func rewrite(root *model.Node, targetID string, fn func(*model.Node) *model.Node) (*model.Node, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == targetID {
		return fn(root), true
	}
	for i, c := range root.Children {
		if newChild, ok := rewrite(c, targetID, fn); ok {
			children := make([]*model.Node, len(root.Children))
			copy(children, root.Children)
			children[i] = newChild
			return shallowWith(root, children), true
		}
	}
	return root, false
}

// detach removes the subtree rooted at id and returns the new root, the
// detached subtree, and the id of its former parent.
func detach(root *model.Node, id string) (newRoot, removed *model.Node, parentID string, ok bool) {
	if root == nil || root.ID == id {
		return root, nil, "", false
	}
	parent := FindParent(root, id)
	if parent == nil {
		return root, nil, "", false
	}
	newRoot, _ = rewrite(root, parent.ID, func(p *model.Node) *model.Node {
		children := make([]*model.Node, 0, len(p.Children)-1)
		for _, c := range p.Children {
			if c.ID == id {
				removed = c
				continue
			}
			children = append(children, c)
		}
		return shallowWith(p, children)
	})
	return newRoot, removed, parent.ID, removed != nil
}

// AddChild appends a new empty-text leaf as the last child of parentID.
// Returns the unchanged root and an empty id if parentID is not found.
func AddChild(root *model.Node, parentID string) (*model.Node, string) {
	child := model.NewNode("")
	newRoot, ok := rewrite(root, parentID, func(p *model.Node) *model.Node {
		children := make([]*model.Node, 0, len(p.Children)+1)
		children = append(children, p.Children...)
		children = append(children, child)
		return shallowWith(p, children)
	})
	if !ok {
		return root, ""
	}
	return newRoot, child.ID
}

// AddSibling inserts a new empty-text leaf immediately after afterID among
// its parent's children. No-op if afterID is the root or not found.
func AddSibling(root *model.Node, afterID string) (*model.Node, string) {
	parent := FindParent(root, afterID)
	if parent == nil {
		return root, ""
	}
	sibling := model.NewNode("")
	newRoot, _ := rewrite(root, parent.ID, func(p *model.Node) *model.Node {
		children := make([]*model.Node, 0, len(p.Children)+1)
		for _, c := range p.Children {
			children = append(children, c)
			if c.ID == afterID {
				children = append(children, sibling)
			}
		}
		return shallowWith(p, children)
	})
	return newRoot, sibling.ID
}

// DeleteNode removes id and its entire subtree. The returned parent id is
// a focus-fallback hint for the caller. No-op if id is the root.
func DeleteNode(root *model.Node, id string) (*model.Node, string) {
	newRoot, _, parentID, ok := detach(root, id)
	if !ok {
		return root, ""
	}
	return newRoot, parentID
}

// BatchDelete removes every id in ids in one logical pass. The set is
// top-level filtered first: when both an ancestor and one of its
// descendants are selected, removing the ancestor already removes the
// descendant. The root is always excluded even if present in ids.
func BatchDelete(root *model.Node, ids map[string]struct{}) *model.Node {
	for _, id := range TopLevelFilter(root, ids) {
		if next, _, _, ok := detach(root, id); ok {
			root = next
		}
	}
	return root
}

// SetText replaces the text of id, clamped to the maximum length. No-op
// if id is not found.
func SetText(root *model.Node, id, text string) *model.Node {
	text = model.ClampText(text)
	newRoot, ok := rewrite(root, id, func(n *model.Node) *model.Node {
		copied := shallowWith(n, n.Children)
		copied.Text = text
		return copied
	})
	if !ok {
		return root
	}
	return newRoot
}

// insertAt places node relative to targetID: as the last child for
// PositionInside, or immediately before/after targetID among its current
// siblings for PositionPrev/PositionNext. Returns the unchanged root if
// the target does not exist or a sibling position is requested on the
// root.
func insertAt(root, node *model.Node, targetID string, position DropPosition) (*model.Node, bool) {
	if position == PositionInside {
		return rewrite(root, targetID, func(t *model.Node) *model.Node {
			children := make([]*model.Node, 0, len(t.Children)+1)
			children = append(children, t.Children...)
			children = append(children, node)
			return shallowWith(t, children)
		})
	}
	parent := FindParent(root, targetID)
	if parent == nil {
		return root, false
	}
	return rewrite(root, parent.ID, func(p *model.Node) *model.Node {
		children := make([]*model.Node, 0, len(p.Children)+1)
		for _, c := range p.Children {
			if c.ID == targetID && position == PositionPrev {
				children = append(children, node)
			}
			children = append(children, c)
			if c.ID == targetID && position == PositionNext {
				children = append(children, node)
			}
		}
		return shallowWith(p, children)
	})
}

// MoveNode detaches draggedID's subtree and reinserts it relative to
// targetID. No-op when draggedID equals targetID, draggedID is the root,
// targetID lies inside the dragged subtree (which would create a cycle),
// or either id does not exist.
func MoveNode(root *model.Node, draggedID, targetID string, position DropPosition) *model.Node {
	if draggedID == targetID {
		return root
	}
	if FindByID(root, targetID) == nil {
		return root
	}
	if IsDescendant(root, targetID, draggedID) {
		return root
	}
	detached, subtree, _, ok := detach(root, draggedID)
	if !ok {
		return root
	}
	newRoot, ok := insertAt(detached, subtree, targetID, position)
	if !ok {
		return root
	}
	return newRoot
}

// MoveNodes moves a multi-selection inside targetID. The selection is
// reduced to its top-level nodes (a parent and its selected descendant
// move together exactly once), the root and the target itself are
// excluded, and any id whose subtree contains the target is dropped to
// keep the tree acyclic. Survivors are appended as children of targetID
// in document order.
func MoveNodes(root *model.Node, draggedIDs map[string]struct{}, targetID string) *model.Node {
	if FindByID(root, targetID) == nil {
		return root
	}
	var moved []string
	for _, id := range TopLevelFilter(root, draggedIDs) {
		if id == targetID {
			continue
		}
		if IsDescendant(root, targetID, id) {
			continue
		}
		moved = append(moved, id)
	}
	for _, id := range moved {
		root = MoveNode(root, id, targetID, PositionInside)
	}
	return root
}

// CopyNode deep-clones the subtree rooted at sourceID, assigning fresh
// ids to every node in the clone, and inserts it with the same positional
// semantics as MoveNode. No-op if sourceID equals targetID or either id
// does not exist.
func CopyNode(root *model.Node, sourceID, targetID string, position DropPosition) *model.Node {
	if sourceID == targetID {
		return root
	}
	source := FindByID(root, sourceID)
	if source == nil || FindByID(root, targetID) == nil {
		return root
	}
	clone := source.CloneWithFreshIDs()
	newRoot, ok := insertAt(root, clone, targetID, position)
	if !ok {
		return root
	}
	return newRoot
}

// Promote outdents id: the node becomes the next sibling of its former
// parent. No-op for the root and for direct children of the root.
func Promote(root *model.Node, id string) *model.Node {
	parent := FindParent(root, id)
	if parent == nil || parent.IsRoot {
		return root
	}
	return MoveNode(root, id, parent.ID, PositionNext)
}

// Reorder swaps id with its previous (delta < 0) or next (delta > 0)
// sibling. No-op at either end of the sibling list.
func Reorder(root *model.Node, id string, delta int) *model.Node {
	parent := FindParent(root, id)
	if parent == nil || delta == 0 {
		return root
	}
	idx := -1
	for i, c := range parent.Children {
		if c.ID == id {
			idx = i
			break
		}
	}
	swap := idx + delta
	if idx < 0 || swap < 0 || swap >= len(parent.Children) {
		return root
	}
	newRoot, _ := rewrite(root, parent.ID, func(p *model.Node) *model.Node {
		children := make([]*model.Node, len(p.Children))
		copy(children, p.Children)
		children[idx], children[swap] = children[swap], children[idx]
		return shallowWith(p, children)
	})
	return newRoot
}

// TopLevelFilter reduces ids to those whose ancestors are not themselves
// selected, in document order. The root id never survives the filter.
func TopLevelFilter(root *model.Node, ids map[string]struct{}) []string {
	var result []string
	var walk func(n *model.Node, coveredByAncestor bool)
	walk = func(n *model.Node, coveredByAncestor bool) {
		_, selected := ids[n.ID]
		if selected && !coveredByAncestor && !n.IsRoot {
			result = append(result, n.ID)
		}
		for _, c := range n.Children {
			walk(c, coveredByAncestor || (selected && !n.IsRoot))
		}
	}
	if root != nil {
		walk(root, false)
	}
	return result
}
