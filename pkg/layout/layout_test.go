package layout

import (
	"testing"

	"github.com/kraitsura/mindgrove/pkg/model"
)

func sampleTree() *model.Node {
	return &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "a", Text: "Alpha", Children: []*model.Node{
				{ID: "a1", Text: "Alpha one"},
				{ID: "a2", Text: "Alpha two"},
			}},
			{ID: "b", Text: "Beta"},
		},
	}
}

func testEngine() *Engine {
	return NewEngine(DefaultConfig(), FixedMeasurer{RuneWidth: 8})
}

func TestCalculateDeterministic(t *testing.T) {
	e := testEngine()
	root := sampleTree()
	first := e.Calculate(root, model.ModeMindmap)
	second := e.Calculate(root, model.ModeMindmap)
	if len(first.Nodes) != len(second.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(first.Nodes), len(second.Nodes))
	}
	for i := range first.Nodes {
		a, b := first.Nodes[i], second.Nodes[i]
		if a.X != b.X || a.Y != b.Y || a.Width != b.Width || a.ActualHeight != b.ActualHeight {
			t.Errorf("node %s geometry differs between runs", a.Node.ID)
		}
	}
}

func TestNodeSizing(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, FixedMeasurer{RuneWidth: 8})
	root := &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "tiny", Text: "x"},
			{ID: "wide", Text: "a very very very very very long single line of node text"},
			{ID: "tall", Text: "one\ntwo\nthree"},
		},
	}
	res := e.Calculate(root, model.ModeMindmap)

	if got := res.ByID["tiny"].Width; got != cfg.MinWidth {
		t.Errorf("short text should clamp to MinWidth, got %v", got)
	}
	if got := res.ByID["wide"].Width; got != cfg.MaxWidth {
		t.Errorf("long text should clamp to MaxWidth, got %v", got)
	}
	want := cfg.BaseHeight + 2*cfg.PerLineHeight
	if got := res.ByID["tall"].ActualHeight; got != want {
		t.Errorf("3-line node height = %v, want %v", got, want)
	}
	if got := res.ByID["tiny"].ActualHeight; got != cfg.BaseHeight {
		t.Errorf("1-line node height = %v, want %v", got, cfg.BaseHeight)
	}
}

func TestMindmapSeparation(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, FixedMeasurer{RuneWidth: 8})
	root := &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "a", Text: "A", Children: []*model.Node{
				{ID: "a1", Text: "A1"},
				{ID: "a2", Text: "A2"},
			}},
			{ID: "b", Text: "B", Children: []*model.Node{
				{ID: "b1", Text: "B1"},
			}},
		},
	}
	res := e.Calculate(root, model.ModeMindmap)

	a1, a2, b1 := res.ByID["a1"], res.ByID["a2"], res.ByID["b1"]
	siblingGap := a2.X - a1.X
	cousinGap := b1.X - a2.X
	if siblingGap != cfg.SlotSize*cfg.SiblingSep {
		t.Errorf("sibling gap = %v, want %v", siblingGap, cfg.SlotSize*cfg.SiblingSep)
	}
	if cousinGap != cfg.SlotSize*cfg.CousinSep {
		t.Errorf("cousin gap = %v, want %v", cousinGap, cfg.SlotSize*cfg.CousinSep)
	}

	// Parents center over their children.
	a := res.ByID["a"]
	if a.X != (a1.X+a2.X)/2 {
		t.Errorf("parent should center over children, got %v", a.X)
	}
}

func TestMindmapTallNodesPushNeighbors(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, FixedMeasurer{RuneWidth: 8})
	root := &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "a", Text: "short"},
			{ID: "tall", Text: "one\ntwo\nthree\nfour"},
		},
	}
	res := e.Calculate(root, model.ModeMindmap)
	gap := res.ByID["tall"].X - res.ByID["a"].X
	plain := cfg.SlotSize * cfg.SiblingSep
	if gap <= plain {
		t.Errorf("tall node should increase separation: gap %v, plain %v", gap, plain)
	}
}

func TestMindmapDepthColumns(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, FixedMeasurer{RuneWidth: 8})
	root := sampleTree()
	res := e.Calculate(root, model.ModeMindmap)

	r := res.ByID["r"]
	if r.Y != 0 {
		t.Errorf("root column starts at 0, got %v", r.Y)
	}
	// Depth-1 column offset is root width + gap.
	wantDepth1 := r.Width + cfg.HGap
	if got := res.ByID["a"].Y; got != wantDepth1 {
		t.Errorf("depth-1 offset = %v, want %v", got, wantDepth1)
	}
	if got := res.ByID["b"].Y; got != wantDepth1 {
		t.Errorf("all depth-1 nodes share a column, got %v", got)
	}
	// Depth-2 accumulates the widest depth-1 node.
	maxDepth1 := res.ByID["a"].Width
	if w := res.ByID["b"].Width; w > maxDepth1 {
		maxDepth1 = w
	}
	wantDepth2 := wantDepth1 + maxDepth1 + cfg.HGap
	if got := res.ByID["a1"].Y; got != wantDepth2 {
		t.Errorf("depth-2 offset = %v, want %v", got, wantDepth2)
	}
}

func TestTreeModeLayout(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, FixedMeasurer{RuneWidth: 8})
	res := e.Calculate(sampleTree(), model.ModeTree)

	// Pre-order: r, a, a1, a2, b with a running vertical cursor.
	var cursor float64
	for _, n := range res.Nodes {
		if n.X != cursor+n.ActualHeight/2 {
			t.Errorf("node %s center = %v, want %v", n.Node.ID, n.X, cursor+n.ActualHeight/2)
		}
		if n.Y != float64(n.Depth)*cfg.TreeIndent {
			t.Errorf("node %s indent = %v, want %v", n.Node.ID, n.Y, float64(n.Depth)*cfg.TreeIndent)
		}
		cursor += n.ActualHeight + cfg.TreeGap
	}
}

func TestMindmapLinkGeometry(t *testing.T) {
	e := testEngine()
	res := e.Calculate(sampleTree(), model.ModeMindmap)

	var link *Link
	for i := range res.Links {
		if res.Links[i].ParentID == "r" && res.Links[i].ChildID == "a" {
			link = &res.Links[i]
		}
	}
	if link == nil {
		t.Fatal("missing link r -> a")
	}
	if len(link.Path) != 2 || link.Path[0].Op != MoveTo || link.Path[1].Op != CubicTo {
		t.Fatalf("mindmap link should be MoveTo+CubicTo, got %v", link.Path)
	}
	p, c := res.ByID["r"], res.ByID["a"]
	start, seg := link.Path[0].To, link.Path[1]
	if start.X != p.Y+p.Width || start.Y != p.X {
		t.Errorf("link should start at the parent's right edge, got %v", start)
	}
	if seg.To.X != c.Y || seg.To.Y != c.X {
		t.Errorf("link should end at the child's left edge, got %v", seg.To)
	}
	mid := (start.X + seg.To.X) / 2
	if seg.C1.X != mid || seg.C1.Y != start.Y || seg.C2.X != mid || seg.C2.Y != seg.To.Y {
		t.Errorf("control points should sit at the horizontal midpoint holding each endpoint's vertical")
	}
}

func TestTreeLinkGeometry(t *testing.T) {
	e := testEngine()
	res := e.Calculate(sampleTree(), model.ModeTree)
	for _, link := range res.Links {
		if len(link.Path) != 3 || link.Path[1].Op != LineTo || link.Path[2].Op != LineTo {
			t.Fatalf("tree link should be an orthogonal L, got %v", link.Path)
		}
		corner, end := link.Path[1].To, link.Path[2].To
		if corner.Y != end.Y {
			t.Errorf("final segment must run horizontally into the child")
		}
		if link.Path[0].To.X != corner.X {
			t.Errorf("first segment must run vertically down the rail")
		}
	}
}

func TestNilMeasurerFallsBack(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	res := e.Calculate(sampleTree(), model.ModeMindmap)
	if len(res.Nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(res.Nodes))
	}
	for _, n := range res.Nodes {
		if n.Width <= 0 || n.ActualHeight <= 0 {
			t.Errorf("node %s has degenerate size without a measurer", n.Node.ID)
		}
	}
}
