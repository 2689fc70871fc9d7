// Package history implements the undo/redo engine: an ordered past, a
// single present entry, and an ordered future over deep snapshots of the
// node tree. Structural edits commit synchronously; keystroke-level text
// edits are applied to the present entry in place and coalesced into one
// committed entry per quiet period.
package history

import (
	"sync"
	"time"

	"github.com/kraitsura/mindgrove/pkg/debounce"
	"github.com/kraitsura/mindgrove/pkg/model"
)

// Entry is one committed tree state.
type Entry struct {
	Snapshot *model.Node
	Seq      uint64
	Label    string
	At       time.Time
}

// Engine owns the past/present/future triple. All snapshots are deep
// clones; the live tree never aliases history. The mutex exists because
// the transient finalizer runs on a timer goroutine; every other caller
// is the single-threaded interaction dispatch.
type Engine struct {
	mu      sync.Mutex
	past    []Entry
	present Entry
	future  []Entry
	seq     uint64

	transient     *debounce.Debouncer
	transientOpen bool
}

// New creates an engine whose present entry snapshots the initial root.
// A window of 0 selects the default debounce window.
func New(root *model.Node, window time.Duration) *Engine {
	e := &Engine{transient: debounce.New(window)}
	e.present = e.newEntry(root, "initial")
	return e
}

func (e *Engine) newEntry(root *model.Node, label string) Entry {
	e.seq++
	return Entry{Snapshot: root.Clone(), Seq: e.seq, Label: label, At: time.Now()}
}

// Commit pushes a new committed entry for root. Any open transient
// window is finalized first, and the redo future is discarded.
func (e *Engine) Commit(root *model.Node, label string) {
	e.transient.Cancel()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transientOpen = false
	e.past = append(e.past, e.present)
	e.present = e.newEntry(root, label)
	e.future = nil
}

// CommitTransient records a keystroke-level edit. The first call in a
// quiet window opens a new entry (discarding the redo future, like any
// edit); subsequent calls replace the present snapshot in place. The
// window is finalized by whichever comes first: the debounce period,
// a Flush, or the next structural commit.
func (e *Engine) CommitTransient(root *model.Node, label string) {
	e.mu.Lock()
	if !e.transientOpen {
		e.past = append(e.past, e.present)
		e.present = e.newEntry(root, label)
		e.future = nil
		e.transientOpen = true
	} else {
		e.present.Snapshot = root.Clone()
		e.present.At = time.Now()
	}
	e.mu.Unlock()

	e.transient.Trigger(e.finalizeTransient)
}

func (e *Engine) finalizeTransient() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transientOpen = false
}

// Flush synchronously finalizes a pending transient window. Every
// structural edit, delete, undo and redo entry point must run through
// here (directly or via Commit) before proceeding, so a stale debounced
// write can never resurrect state afterwards.
func (e *Engine) Flush() {
	e.transient.Cancel()
	e.finalizeTransient()
}

// Undo steps the present back into the future and returns a clone of the
// prior state. Returns (nil, false) when there is nothing to undo.
func (e *Engine) Undo() (*model.Node, bool) {
	e.Flush()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.past) == 0 {
		return nil, false
	}
	e.future = append([]Entry{e.present}, e.future...)
	e.present = e.past[len(e.past)-1]
	e.past = e.past[:len(e.past)-1]
	return e.present.Snapshot.Clone(), true
}

// Redo re-applies the next future entry. Returns (nil, false) when the
// future is empty.
func (e *Engine) Redo() (*model.Node, bool) {
	e.Flush()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.future) == 0 {
		return nil, false
	}
	e.past = append(e.past, e.present)
	e.present = e.future[0]
	e.future = e.future[1:]
	return e.present.Snapshot.Clone(), true
}

// CanUndo reports whether the past is non-empty.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.past) > 0
}

// CanRedo reports whether the future is non-empty.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.future) > 0
}

// Present returns the current entry's metadata (without the snapshot's
// live identity; the snapshot pointer is the engine's own clone and must
// not be mutated by callers).
func (e *Engine) Present() Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.present
}

// Depth returns the number of past and future entries.
func (e *Engine) Depth() (past, future int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.past), len(e.future)
}
