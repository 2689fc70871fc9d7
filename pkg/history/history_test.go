package history

import (
	"testing"
	"time"

	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/tree"
)

func sampleTree() *model.Node {
	return &model.Node{
		ID: "r", Text: "Root", IsRoot: true,
		Children: []*model.Node{
			{ID: "a", Text: "Alpha"},
			{ID: "b", Text: "Beta"},
		},
	}
}

// sameTree compares two trees structurally: ids, texts, and child order.
func sameTree(x, y *model.Node) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.ID != y.ID || x.Text != y.Text || x.IsRoot != y.IsRoot || len(x.Children) != len(y.Children) {
		return false
	}
	for i := range x.Children {
		if !sameTree(x.Children[i], y.Children[i]) {
			return false
		}
	}
	return true
}

func TestUndoRedoRoundTrip(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)

	edited := tree.SetText(root, "a", "Alpha edited")
	e.Commit(edited, "edit text")

	undone, ok := e.Undo()
	if !ok || !sameTree(undone, root) {
		t.Fatalf("undo should restore the initial tree")
	}
	redone, ok := e.Redo()
	if !ok || !sameTree(redone, edited) {
		t.Fatalf("redo should restore the edited tree")
	}
	if _, ok := e.Redo(); ok {
		t.Errorf("redo with an empty future must be a no-op")
	}
}

func TestUndoOnEmptyPastIsNoop(t *testing.T) {
	e := New(sampleTree(), time.Hour)
	if _, ok := e.Undo(); ok {
		t.Errorf("nothing to undo yet")
	}
}

func TestCommitClearsFuture(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)
	e.Commit(tree.SetText(root, "a", "first"), "first")
	e.Commit(tree.SetText(root, "a", "second"), "second")

	if _, ok := e.Undo(); !ok {
		t.Fatal("undo failed")
	}
	e.Commit(tree.SetText(root, "a", "branch"), "branch")
	if e.CanRedo() {
		t.Errorf("a fresh commit after undo must clear the future")
	}
}

func TestTransientCoalescing(t *testing.T) {
	root := sampleTree()
	e := New(root, 30*time.Millisecond)

	// Rapid keystrokes within one window: one entry.
	cur := root
	for _, text := range []string{"A", "Al", "Alp", "Alph"} {
		cur = tree.SetText(cur, "a", text)
		e.CommitTransient(cur, "edit text")
	}
	if past, _ := e.Depth(); past != 1 {
		t.Fatalf("expected 1 coalesced entry, got %d", past)
	}

	// Let the window close; the next keystroke opens a second entry.
	time.Sleep(80 * time.Millisecond)
	cur = tree.SetText(cur, "a", "Alpha!")
	e.CommitTransient(cur, "edit text")
	if past, _ := e.Depth(); past != 2 {
		t.Fatalf("expected 2 entries across separate windows, got %d", past)
	}
}

func TestTransientSnapshotReplacedInPlace(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)

	first := tree.SetText(root, "a", "x")
	second := tree.SetText(first, "a", "xy")
	e.CommitTransient(first, "edit text")
	e.CommitTransient(second, "edit text")

	if !sameTree(e.Present().Snapshot, second) {
		t.Errorf("present snapshot should track the latest transient state")
	}
	if past, _ := e.Depth(); past != 1 {
		t.Errorf("in-window transients must not grow the past, got %d", past)
	}
}

func TestStructuralEditAfterKeystrokesYieldsTwoEntries(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)

	typed := tree.SetText(root, "a", "typed")
	e.CommitTransient(typed, "edit text")
	e.Flush()

	added, _ := tree.AddChild(typed, "a")
	e.Commit(added, "add child")

	past, _ := e.Depth()
	if past != 2 {
		t.Fatalf("expected typing + structural edit as 2 entries, got %d", past)
	}

	// Undo twice walks back through both, in order.
	step1, _ := e.Undo()
	if !sameTree(step1, typed) {
		t.Errorf("first undo should restore the typed state")
	}
	step2, _ := e.Undo()
	if !sameTree(step2, root) {
		t.Errorf("second undo should restore the initial state")
	}
}

func TestUndoFlushesPendingTransient(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)

	typed := tree.SetText(root, "a", "typed")
	e.CommitTransient(typed, "edit text")

	// The window is still open; undo must finalize it first and then
	// step back to the initial state.
	undone, ok := e.Undo()
	if !ok || !sameTree(undone, root) {
		t.Fatalf("undo should restore the pre-typing state")
	}
	redone, ok := e.Redo()
	if !ok || !sameTree(redone, typed) {
		t.Fatalf("redo should restore the typed state as one step")
	}
}

func TestSnapshotsDoNotAliasLiveTree(t *testing.T) {
	root := sampleTree()
	e := New(root, time.Hour)
	e.Commit(root, "noop-ish")

	// Mutating the live tree must not reach into history.
	root.Children[0].Text = "mutated behind the engine's back"
	undone, _ := e.Undo()
	if undone.Children[0].Text != "Alpha" {
		t.Errorf("history snapshot aliased the live tree")
	}
}
