package model

// Document is the persisted unit: a titled node tree.
type Document struct {
	Title string `json:"title,omitempty"`
	Root  *Node  `json:"root"`
}

// NewDocument creates a document with a single root node.
func NewDocument(title string) *Document {
	return &Document{Title: title, Root: NewRoot(title)}
}

// LayoutMode selects how the tree is arranged on screen.
type LayoutMode string

const (
	// ModeMindmap stages nodes horizontally by depth with curved links.
	ModeMindmap LayoutMode = "mindmap"
	// ModeTree renders an indented vertical list with orthogonal links.
	ModeTree LayoutMode = "tree"
)

// IsValid returns true if the layout mode is a recognized value.
func (m LayoutMode) IsValid() bool {
	switch m {
	case ModeMindmap, ModeTree:
		return true
	}
	return false
}

// ViewState is the viewport and focus state persisted alongside a
// document. The collaborator stores it verbatim.
type ViewState struct {
	TranslateX    float64    `json:"translateX"`
	TranslateY    float64    `json:"translateY"`
	Scale         float64    `json:"scale"`
	FocusedNodeID string     `json:"focusedNodeId,omitempty"`
	LayoutMode    LayoutMode `json:"layoutMode"`
}

// DefaultViewState returns the view state for a freshly opened document.
func DefaultViewState() ViewState {
	return ViewState{Scale: 1.0, LayoutMode: ModeMindmap}
}
