// Package export renders a document to the formats the download and
// clipboard collaborators consume: a markdown outline, an SVG drawing,
// and a PNG raster of the current layout.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/tree"
)

// Markdown serializes the whole document: a level-one heading for the
// root, two-space-indented bullets for everything below.
func Markdown(doc *model.Document) string {
	if doc == nil {
		return ""
	}
	return tree.MarkdownOutline(doc.Root)
}

// WriteMarkdown writes the outline to path.
func WriteMarkdown(doc *model.Document, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(Markdown(doc)), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	return nil
}
