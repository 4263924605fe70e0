package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/richardhadden/metakit/pkg/core"
)

func collectFired() (func(core.Event), func() []core.Event) {
	var mu sync.Mutex
	var fired []core.Event
	fire := func(e core.Event) {
		mu.Lock()
		fired = append(fired, e)
		mu.Unlock()
	}
	snapshot := func() []core.Event {
		mu.Lock()
		defer mu.Unlock()
		out := make([]core.Event, len(fired))
		copy(out, fired)
		return out
	}
	return fire, snapshot
}

func TestDebouncer_CoalescesSameID(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	fire, snapshot := collectFired()

	// Three rapid events for the same file: only the last survives.
	d.add(core.Event{Type: core.EventCreate, ID: "a.yaml"}, fire)
	d.add(core.Event{Type: core.EventModify, ID: "a.yaml"}, fire)
	d.add(core.Event{Type: core.EventModify, ID: "a.yaml", Timestamp: 99}, fire)

	time.Sleep(100 * time.Millisecond)

	fired := snapshot()
	if len(fired) != 1 {
		t.Fatalf("expected 1 fired event, got %d", len(fired))
	}
	if fired[0].Timestamp != 99 {
		t.Errorf("expected the last event to fire, got %+v", fired[0])
	}
}

func TestDebouncer_DistinctIDsFireIndependently(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	fire, snapshot := collectFired()

	d.add(core.Event{Type: core.EventModify, ID: "a.yaml"}, fire)
	d.add(core.Event{Type: core.EventModify, ID: "b.yaml"}, fire)

	time.Sleep(100 * time.Millisecond)

	if got := len(snapshot()); got != 2 {
		t.Errorf("expected 2 fired events, got %d", got)
	}
}

func TestDebouncer_StopSuppressesPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	fire, snapshot := collectFired()

	d.add(core.Event{Type: core.EventModify, ID: "a.yaml"}, fire)
	d.stopAndWait(time.Second)

	// New events after stop are dropped too.
	d.add(core.Event{Type: core.EventModify, ID: "b.yaml"}, fire)

	time.Sleep(100 * time.Millisecond)
	if got := len(snapshot()); got != 0 {
		t.Errorf("expected no fired events after stop, got %d", got)
	}
}
