// Package watcher reports changes to a fixed set of files.
//
// Editors often replace a file instead of writing it in place, so the
// watcher observes the parent directories and filters events by name.
// Bursts of events within [DebounceInterval] are batched into a single
// [ChangeEvent].
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the watcher waits for further events
// before flushing a batch.
const DebounceInterval = 100 * time.Millisecond

// ChangeEvent is a batch of file changes.
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a set of files for writes, creations and renames.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	logger  *log.Logger
	events  chan ChangeEvent

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher. Call [FileWatcher.Add] for every file, then Start.
func New(logger *log.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileWatcher{
		watcher: w,
		logger:  logger,
		events:  make(chan ChangeEvent, 16),
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
	}, nil
}

// Add watches path. Adding the same file twice is a no-op.
func (fw *FileWatcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.files[abs] = true
	dir := filepath.Dir(abs)
	if fw.dirs[dir] {
		return nil
	}
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	fw.dirs[dir] = true
	fw.logger.Debug("watching directory", "path", dir)
	return nil
}

// Files returns the watched files, sorted.
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start processes events until ctx is done, then closes the watcher and
// the events channel.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.processEvents(ctx)
}

// Events returns the channel of change batches.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

func (fw *FileWatcher) watched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.files[abs]
}

// processEvents batches relevant events and flushes them after the
// debounce interval.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	defer fw.watcher.Close()

	var pending []string
	seen := make(map[string]bool)

	flushTimer := time.NewTimer(DebounceInterval)
	flushTimer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		sort.Strings(pending)
		select {
		case fw.events <- ChangeEvent{Paths: pending, Timestamp: time.Now()}:
		case <-ctx.Done():
		}
		pending = nil
		seen = make(map[string]bool)
	}

	for {
		select {
		case <-ctx.Done():
			flushTimer.Stop()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !fw.watched(event.Name) {
				continue
			}
			if !seen[event.Name] {
				seen[event.Name] = true
				pending = append(pending, event.Name)
			}
			flushTimer.Reset(DebounceInterval)

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("watcher error", "error", err)
		}
	}
}
