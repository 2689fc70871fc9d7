// Package debounce coalesces rapid events into a single callback
// invocation, with an explicit flush/cancel contract so callers can
// resolve a pending callback synchronously before operations that must
// not race with it.
package debounce

import (
	"sync"
	"time"
)

// DefaultDuration is the default debounce window.
const DefaultDuration = 800 * time.Millisecond

// Debouncer schedules a callback to run after a quiet period. When
// Trigger is called multiple times within the window, only the last
// callback runs. Flush runs the pending callback immediately; Cancel
// discards it. Both invalidate any timer that may already have fired.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	pending  func()
	mu       sync.Mutex
	seq      uint64
}

// New creates a Debouncer with the specified window. If duration is 0,
// DefaultDuration is used.
func New(duration time.Duration) *Debouncer {
	if duration == 0 {
		duration = DefaultDuration
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules the callback to run after the debounce window. A
// subsequent Trigger before the window elapses replaces the scheduled
// callback and restarts the window.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	d.pending = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		run := func() func() {
			d.mu.Lock()
			defer d.mu.Unlock()

			// Only run the most recently scheduled callback. This avoids
			// races where Stop() returns false because the timer already
			// fired and the old callback starts running concurrently.
			if seq != d.seq {
				return nil
			}
			d.timer = nil
			cb := d.pending
			d.pending = nil
			return cb
		}()
		if run != nil {
			run()
		}
	})
}

// Flush runs the pending callback synchronously, if any, and clears the
// schedule. Returns true if a callback ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	cb := d.pending
	d.pending = nil
	d.mu.Unlock()

	if cb == nil {
		return false
	}
	cb()
	return true
}

// Cancel discards any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Invalidate a callback that might already be executing due to timer
	// races.
	d.seq++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Pending reports whether a callback is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
