package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType describes which part of the dataset changed on disk.
type ChangeType int

const (
	// ChangeEvents indicates events were added, edited or removed.
	ChangeEvents ChangeType = iota

	// ChangeRegions indicates the region taxonomy was rewritten.
	ChangeRegions

	// ChangeInvalidated signals a change that could not be classified;
	// callers should reload everything.
	ChangeInvalidated
)

func (t ChangeType) String() string {
	switch t {
	case ChangeEvents:
		return "events"
	case ChangeRegions:
		return "regions"
	default:
		return "invalidated"
	}
}

// Change is emitted by Persistence.Watch when underlying storage changes.
type Change struct {
	Type ChangeType
}

// WatchThrottle is how long Watch coalesces a burst of writes.
const WatchThrottle = 100 * time.Millisecond

// Watch streams changes until ctx is cancelled. Callers should drain the
// returned channel; it is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Change, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", "error", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	changes := make(chan Change, 16)

	go func() {
		defer close(changes)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		var sendMu sync.Mutex
		done := false
		send := func(c Change) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case changes <- c:
			default:
				// Consumer is behind; the next reload picks this up anyway.
			}
		}

		throttle := newChangeThrottle(WatchThrottle)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn("watch error", "error", err)
				throttle.Enqueue(ChangeInvalidated, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							if err := watcher.Add(dir); err != nil {
								p.log.Warn("watch directory", "dir", dir, "error", err)
							} else {
								watched[dir] = struct{}{}
							}
						}
						throttle.Enqueue(ChangeInvalidated, send)
						continue
					}
				}

				throttle.Enqueue(p.classify(evt.Name), send)
			}
		}
	}()

	return changes, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// classify maps a diskv file path back to the part of the dataset it holds.
func (p *persistence) classify(path string) ChangeType {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ChangeInvalidated
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	switch {
	case parts[0] == eventsBucket:
		return ChangeEvents
	case parts[0] == metaBucket && len(parts) > 1 && parts[1] == "regions":
		return ChangeRegions
	case parts[0] == metaBucket:
		// The seeded marker accompanies an event or region write.
		return ChangeEvents
	default:
		return ChangeInvalidated
	}
}

// changeThrottle coalesces rapid notifications so a viewer reloads once per
// burst of filesystem activity instead of on every single write.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[ChangeType]struct{}
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[ChangeType]struct{}),
	}
}

func (t *changeThrottle) Enqueue(c ChangeType, send func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[c] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[ChangeType]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, ok := pending[ChangeInvalidated]; ok {
		send(Change{Type: ChangeInvalidated})
		return
	}
	for _, c := range []ChangeType{ChangeEvents, ChangeRegions} {
		if _, ok := pending[c]; ok {
			send(Change{Type: c})
		}
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
