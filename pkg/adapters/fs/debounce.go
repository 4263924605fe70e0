package fs

import (
	"sync"
	"time"

	"github.com/richardhadden/metakit/pkg/core"
)

// debouncer coalesces bursts of events for the same file, firing the last
// one after a quiet interval. fsnotify emits several raw events for a
// single logical save, and editors write through temp files; debouncing
// keeps the outgoing channel to roughly one event per save.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval, timers: make(map[string]*time.Timer)}
}

// add schedules fire(event) after the quiet interval, replacing any
// pending timer for the same event ID.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if prev, ok := d.timers[event.ID]; ok && prev.Stop() {
		// The pending timer never fired; release its waitgroup slot.
		d.wg.Done()
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[event.ID] == t {
			delete(d.timers, event.ID)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(event)
		}
	})
	d.timers[event.ID] = t
}

// stopAndWait stops accepting new events and waits for in-flight timers to
// finish, up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
