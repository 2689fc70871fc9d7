package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/model"
)

// Bundle writes the markdown, SVG, and PNG renditions of a document
// side by side under dir, named after the document title. The three
// formats are independent and written concurrently; the first failure
// wins.
func Bundle(dir string, doc *model.Document, res *layout.Result) error {
	base := slug(doc.Title)
	if base == "" {
		base = "mindmap"
	}

	var g errgroup.Group
	g.Go(func() error {
		return WriteMarkdown(doc, filepath.Join(dir, base+".md"))
	})
	g.Go(func() error {
		return WriteSVG(res, filepath.Join(dir, base+".svg"))
	})
	g.Go(func() error {
		return WritePNG(res, filepath.Join(dir, base+".png"))
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("export bundle: %w", err)
	}
	return nil
}

// slug turns a document title into a safe file name.
func slug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
