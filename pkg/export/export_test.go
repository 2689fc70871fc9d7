package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/model"
)

func sampleDoc() *model.Document {
	return &model.Document{
		Title: "Trip Planning",
		Root: &model.Node{
			ID: "r", Text: "Trip", IsRoot: true,
			Children: []*model.Node{
				{ID: "a", Text: "Flights", Children: []*model.Node{
					{ID: "a1", Text: "Compare fares"},
				}},
				{ID: "b", Text: "Hotels"},
			},
		},
	}
}

func sampleLayout(doc *model.Document) *layout.Result {
	e := layout.NewEngine(layout.DefaultConfig(), layout.FixedMeasurer{RuneWidth: 8})
	return e.Calculate(doc.Root, model.ModeMindmap)
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleDoc())
	want := "# Trip\n" +
		"- Flights\n" +
		"  - Compare fares\n" +
		"- Hotels\n"
	if got != want {
		t.Errorf("markdown mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSVGContainsNodesAndLinks(t *testing.T) {
	doc := sampleDoc()
	res := sampleLayout(doc)

	var buf bytes.Buffer
	if err := SVG(&buf, res); err != nil {
		t.Fatalf("SVG render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not an SVG document")
	}
	for _, text := range []string{"Trip", "Flights", "Hotels", "Compare fares"} {
		if !strings.Contains(out, text) {
			t.Errorf("missing node text %q", text)
		}
	}
	// One curved path per parent-child edge.
	if got := strings.Count(out, "<path"); got != len(res.Links) {
		t.Errorf("expected %d link paths, got %d", len(res.Links), got)
	}
}

func TestBundleWritesAllFormats(t *testing.T) {
	doc := sampleDoc()
	res := sampleLayout(doc)
	dir := t.TempDir()

	if err := Bundle(dir, doc, res); err != nil {
		t.Fatalf("bundle failed: %v", err)
	}
	for _, name := range []string{"trip-planning.md", "trip-planning.svg", "trip-planning.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing export %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("export %s is empty", name)
		}
	}
}

func TestBundleCreatesMissingDirectory(t *testing.T) {
	doc := sampleDoc()
	res := sampleLayout(doc)

	// The target directory does not exist yet; every writer runs
	// concurrently and each must be able to create it on its own.
	for i := 0; i < 20; i++ {
		dir := filepath.Join(t.TempDir(), "export")
		if err := Bundle(dir, doc, res); err != nil {
			t.Fatalf("bundle into fresh dir failed on run %d: %v", i, err)
		}
		if _, err := os.Stat(filepath.Join(dir, "trip-planning.md")); err != nil {
			t.Fatalf("missing markdown export: %v", err)
		}
	}
}

func TestWriteMarkdownCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.md")
	if err := WriteMarkdown(sampleDoc(), path); err != nil {
		t.Fatalf("write into missing dir failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Trip\n") {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Trip Planning":  "trip-planning",
		"  Q3 / Roadmap": "q3-roadmap",
		"":               "",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
