package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraitsura/mindgrove/pkg/debounce"
)

// watchDebounce coalesces the bursts of write events editors and the
// atomic-rename save produce into one notification.
const watchDebounce = 250 * time.Millisecond

// Watcher reports external changes to an open document file so the UI
// can offer a reload. The watch covers the parent directory because
// atomic saves replace the file inode.
type Watcher struct {
	fw   *fsnotify.Watcher
	deb  *debounce.Debouncer
	path string
	done chan struct{}
}

// WatchDocument starts watching path and invokes onChange (debounced,
// on the watcher goroutine) whenever the file is written or replaced.
func WatchDocument(path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	w := &Watcher{
		fw:   fw,
		deb:  debounce.New(watchDebounce),
		path: abs,
		done: make(chan struct{}),
	}
	go w.run(onChange)
	return w, nil
}

func (w *Watcher) run(onChange func()) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.deb.Trigger(onChange)
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next save still works.
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and discards any pending notification.
func (w *Watcher) Close() error {
	close(w.done)
	w.deb.Cancel()
	return w.fw.Close()
}
