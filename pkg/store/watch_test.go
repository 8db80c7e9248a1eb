package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"tableflip.dev/annals/pkg/event"
)

func waitFor(t *testing.T, ch <-chan Change, accept ...ChangeType) Change {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			for _, want := range accept {
				if c.Type == want {
					return c
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v", accept)
		}
	}
}

func TestPersistenceWatchEmitsEventChanges(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.StoreEvent(event.Event{ID: 1, Name: "Roman Republic", Start: -509, End: -27, Region: "Western Europe"}); err != nil {
		t.Fatalf("store event: %v", err)
	}
	// The events directory is new, so the first notice may be a full reload.
	waitFor(t, ch, ChangeEvents, ChangeInvalidated)
}

func TestPersistenceWatchEmitsRegionChanges(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.StoreRegions(event.Defaults().Regions); err != nil {
		t.Fatalf("seed regions: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.StoreRegions([]event.Region{{ID: "r1", Name: "Europe"}}); err != nil {
		t.Fatalf("store regions: %v", err)
	}
	waitFor(t, ch, ChangeRegions)

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestChangeThrottleCoalesces(t *testing.T) {
	var mu sync.Mutex
	var got []Change
	send := func(c Change) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	}

	th := newChangeThrottle(20 * time.Millisecond)
	for i := 0; i < 10; i++ {
		th.Enqueue(ChangeEvents, send)
	}
	th.Enqueue(ChangeRegions, send)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	if len(got) != 2 || got[0].Type != ChangeEvents || got[1].Type != ChangeRegions {
		t.Fatalf("expected one events and one regions change, got %v", got)
	}
	got = nil
	mu.Unlock()

	th.Enqueue(ChangeEvents, send)
	th.Enqueue(ChangeInvalidated, send)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Type != ChangeInvalidated {
		t.Fatalf("expected a single invalidation, got %v", got)
	}
}

func TestClassify(t *testing.T) {
	base := t.TempDir()
	pp, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := pp.(*persistence)
	tests := map[string]ChangeType{
		base + "/events/12":   ChangeEvents,
		base + "/meta/regions": ChangeRegions,
		base + "/meta/seeded":  ChangeEvents,
		base + "/other":        ChangeInvalidated,
		base:                   ChangeInvalidated,
	}
	for path, want := range tests {
		if got := p.classify(path); got != want {
			t.Fatalf("classify(%q): expected %v, got %v", path, want, got)
		}
	}
}
