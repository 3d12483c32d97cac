// Package watch notices edits to the record store file made outside this
// process.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounce = 300 * time.Millisecond
	tickInterval    = 50 * time.Millisecond
)

// Stats counts watcher activity.
type Stats struct {
	Events        int
	Notifications int
	Errors        int
	LastEventTime time.Time
	LastEventOp   string
}

// StoreWatcher calls onChange once a burst of changes to one file settles.
// The parent directory is watched so atomic rename-over writes are seen.
type StoreWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	onChange func()
	logger   *slog.Logger
	debounce time.Duration
	pending  bool
	lastSeen time.Time
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stats    Stats
}

// Option configures a StoreWatcher.
type Option func(*StoreWatcher)

// WithDebounce sets how long the file must stay quiet before onChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *StoreWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for path. onChange runs on the watcher goroutine.
func New(path string, onChange func(), logger *slog.Logger, opts ...Option) (*StoreWatcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &StoreWatcher{
		watcher:  fw,
		path:     abs,
		dir:      filepath.Dir(abs),
		onChange: onChange,
		logger:   logger,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It does not block.
func (w *StoreWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.logger.Warn("store watcher: creating directory failed", "dir", w.dir, "error", err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.watcher.Close()
		close(w.doneCh)
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("watching record store", "path", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *StoreWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("store watcher: close failed", "error", err)
	}
}

// Stats returns a snapshot of the counters.
func (w *StoreWatcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *StoreWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("store watcher error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *StoreWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = true
	w.lastSeen = time.Now()
	w.stats.Events++
	w.stats.LastEventTime = w.lastSeen
	w.stats.LastEventOp = event.Op.String()
}

func (w *StoreWatcher) flush(now time.Time) {
	w.mu.Lock()
	if !w.pending || now.Sub(w.lastSeen) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.stats.Notifications++
	w.mu.Unlock()

	w.logger.Info("record store changed on disk", "path", w.path)
	if w.onChange != nil {
		w.onChange()
	}
}
