package viewport

import (
	"math"
	"testing"

	"github.com/kraitsura/mindgrove/pkg/layout"
	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/tree"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRoundTripConversion(t *testing.T) {
	tr := Transform{TranslateX: 120, TranslateY: -40, Scale: 1.5}
	sx, sy := tr.ToScreen(10, 20)
	lx, ly := tr.ToLogical(sx, sy)
	if !almost(lx, 10) || !almost(ly, 20) {
		t.Errorf("round trip drifted: (%v, %v)", lx, ly)
	}
}

func TestZoomAtAnchorsCursor(t *testing.T) {
	tr := Identity()
	// The logical point under the cursor must stay under the cursor.
	cursorX, cursorY := 200.0, 150.0
	beforeX, beforeY := tr.ToLogical(cursorX, cursorY)
	tr = tr.ZoomAt(cursorX, cursorY, 1.5)
	afterX, afterY := tr.ToLogical(cursorX, cursorY)
	if !almost(beforeX, afterX) || !almost(beforeY, afterY) {
		t.Errorf("zoom moved the anchor point: (%v,%v) -> (%v,%v)", beforeX, beforeY, afterX, afterY)
	}
}

func TestZoomClamped(t *testing.T) {
	tr := Identity()
	for i := 0; i < 50; i++ {
		tr = tr.ZoomAt(0, 0, 2.0)
	}
	if tr.Scale != MaxScale {
		t.Errorf("scale should clamp at %v, got %v", MaxScale, tr.Scale)
	}
	for i := 0; i < 100; i++ {
		tr = tr.ZoomAt(0, 0, 0.5)
	}
	if tr.Scale != MinScale {
		t.Errorf("scale should clamp at %v, got %v", MinScale, tr.Scale)
	}
}

func TestIntersects(t *testing.T) {
	a := layout.Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		name string
		b    layout.Rect
		want bool
	}{
		{"overlapping", layout.Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", layout.Rect{X: 10, Y: 0, W: 5, H: 5}, true},
		{"right of", layout.Rect{X: 11, Y: 0, W: 5, H: 5}, false},
		{"below", layout.Rect{X: 0, Y: 11, W: 5, H: 5}, false},
		{"containing", layout.Rect{X: -5, Y: -5, W: 30, H: 30}, true},
	}
	for _, tc := range cases {
		if got := Intersects(a, tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyDrop(t *testing.T) {
	// A 100px-tall box spanning screen y 200..300.
	box := layout.Rect{X: 0, Y: 200, W: 120, H: 100}
	if got := ClassifyDrop(box, 215, false); got != tree.PositionPrev {
		t.Errorf("pointer 15%% into the box should classify prev, got %v", got)
	}
	if got := ClassifyDrop(box, 290, false); got != tree.PositionNext {
		t.Errorf("pointer 90%% into the box should classify next, got %v", got)
	}
	if got := ClassifyDrop(box, 250, false); got != tree.PositionInside {
		t.Errorf("pointer at the middle should classify inside, got %v", got)
	}
	if got := ClassifyDrop(box, 215, true); got != tree.PositionInside {
		t.Errorf("the root always classifies inside, got %v", got)
	}
}

func layoutTwoNodes() *layout.Result {
	root := &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "a", Text: "Alpha"},
			{ID: "b", Text: "Beta"},
		},
	}
	e := layout.NewEngine(layout.DefaultConfig(), layout.FixedMeasurer{RuneWidth: 8})
	return e.Calculate(root, model.ModeMindmap)
}

func TestBoxSelectSelectsOnlyCoveredNode(t *testing.T) {
	res := layoutTwoNodes()
	tr := Identity()

	aBox := tr.RectToScreen(res.ByID["a"].Bounds())
	// A selection rectangle covering only node a's projection.
	sel := layout.Rect{X: aBox.X - 1, Y: aBox.Y - 1, W: aBox.W / 2, H: aBox.H / 2}
	hits := BoxSelect(res, tr, sel)
	if _, ok := hits["a"]; !ok {
		t.Errorf("node a should be selected")
	}
	if _, ok := hits["b"]; ok {
		t.Errorf("node b must stay unselected")
	}
}

func TestCenterOnScenario(t *testing.T) {
	// Scenario: add a child to a bare root, then center on it in an
	// 800x600 viewport.
	root := model.NewRoot("Root")
	root.ID = "r"
	newRoot, childID := tree.AddChild(root, "r")
	if childID == "" {
		t.Fatal("AddChild failed")
	}
	child := tree.FindByID(newRoot, childID)
	if child == nil || child.Text != "" {
		t.Fatalf("expected an empty-text child, got %v", child)
	}

	e := layout.NewEngine(layout.DefaultConfig(), layout.FixedMeasurer{RuneWidth: 8})
	res := e.Calculate(newRoot, model.ModeMindmap)

	tr, ok := CenterOn(res, childID, 400, 300, false, Identity())
	if !ok {
		t.Fatal("CenterOn missed the child")
	}
	if tr.Scale != 1.0 {
		t.Errorf("centering resets scale to 1.0, got %v", tr.Scale)
	}
	cx, cy := res.ByID[childID].Center()
	if !almost(tr.TranslateX, 400-cx) || !almost(tr.TranslateY, 300-cy) {
		t.Errorf("translate = (%v, %v), want (%v, %v)", tr.TranslateX, tr.TranslateY, 400-cx, 300-cy)
	}
	sx, sy := tr.ToScreen(cx, cy)
	if !almost(sx, 400) || !almost(sy, 300) {
		t.Errorf("child center should land on the anchor, got (%v, %v)", sx, sy)
	}
}

func TestCenterOnPreservesScale(t *testing.T) {
	res := layoutTwoNodes()
	current := Transform{Scale: 2.0}
	tr, ok := CenterOn(res, "a", 400, 300, true, current)
	if !ok || tr.Scale != 2.0 {
		t.Errorf("expected preserved scale 2.0, got %v", tr.Scale)
	}
}

func TestPanIntoView(t *testing.T) {
	res := layoutTwoNodes()
	const pad = 40

	// Push node a far off the left edge.
	tr := Transform{TranslateX: -10000, TranslateY: 0, Scale: 1.0}
	moved, ok := PanIntoView(res, "a", tr, 800, 600, pad)
	if !ok {
		t.Fatal("expected a pan delta")
	}
	box := moved.RectToScreen(res.ByID["a"].Bounds())
	if box.X < pad-1e-9 || box.X+box.W > 800-pad+1e-9 ||
		box.Y < pad-1e-9 || box.Y+box.H > 600-pad+1e-9 {
		t.Errorf("node still outside the padded viewport: %+v", box)
	}

	// Already visible: no change.
	if _, ok := PanIntoView(res, "a", moved, 800, 600, pad); ok {
		t.Errorf("visible node should not trigger a pan")
	}
}

func TestNormalize(t *testing.T) {
	r := Normalize(100, 80, 20, 30)
	want := layout.Rect{X: 20, Y: 30, W: 80, H: 50}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}
