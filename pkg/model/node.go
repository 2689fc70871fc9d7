// Package model defines the persistent values of a mind map document:
// the node tree, the document wrapper, and the saved view state.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxTextLen is the maximum node text length in runes. Longer input is
// clamped at the edit boundary before it reaches the tree.
const MaxTextLen = 5000

// Node is a single entry in the mind map tree. Each node is exclusively
// owned by its parent's Children slice; the root is owned by the Document.
type Node struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Children []*Node `json:"children,omitempty"`
	IsRoot   bool    `json:"isRoot,omitempty"`
}

// NewID returns a fresh unique node id.
func NewID() string {
	return uuid.NewString()
}

// NewRoot creates a new single-node tree.
func NewRoot(text string) *Node {
	return &Node{ID: NewID(), Text: text, IsRoot: true}
}

// NewNode creates a detached non-root node with the given text.
func NewNode(text string) *Node {
	return &Node{ID: NewID(), Text: text}
}

// Clone creates a deep copy of the subtree rooted at n, preserving ids.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{ID: n.ID, Text: n.Text, IsRoot: n.IsRoot}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return clone
}

// CloneWithFreshIDs creates a deep copy of the subtree rooted at n,
// assigning a new id to every copied node. The copy is never a root.
func (n *Node) CloneWithFreshIDs() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{ID: NewID(), Text: n.Text}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.CloneWithFreshIDs()
		}
	}
	return clone
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Walk visits every node in the subtree in depth-first document order.
// Traversal stops early if fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Validate checks the tree invariants: n is the single root, ids are
// unique and non-empty, and IsRoot is false everywhere below the root.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("tree root cannot be nil")
	}
	if !n.IsRoot {
		return fmt.Errorf("root node %s must have IsRoot set", n.ID)
	}
	seen := make(map[string]bool)
	var check func(node *Node, isRoot bool) error
	check = func(node *Node, isRoot bool) error {
		if node.ID == "" {
			return fmt.Errorf("node id cannot be empty")
		}
		if seen[node.ID] {
			return fmt.Errorf("duplicate node id: %s", node.ID)
		}
		seen[node.ID] = true
		if node.IsRoot != isRoot {
			if isRoot {
				return fmt.Errorf("root node %s must have IsRoot set", node.ID)
			}
			return fmt.Errorf("non-root node %s has IsRoot set", node.ID)
		}
		for _, c := range node.Children {
			if c == nil {
				return fmt.Errorf("node %s has a nil child", node.ID)
			}
			if err := check(c, false); err != nil {
				return err
			}
		}
		return nil
	}
	return check(n, true)
}

// ClampText truncates s to MaxTextLen runes.
func ClampText(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTextLen {
		return s
	}
	return string(runes[:MaxTextLen])
}
