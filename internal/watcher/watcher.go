// Package watcher reports changes to the SQLite database file so the live
// dashboard can reload state written by another punch process.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the parent directory of a database file, since SQLite in
// WAL mode commits to a sibling -wal file and may replace the main file.
// The -shm index is skipped because readers touch it too. Bursts of events
// are coalesced into one notification per debounce window.
type Watcher struct {
	targetPath string
	parentPath string
	watcher    *fsnotify.Watcher
	changes    chan struct{}
	logger     *slog.Logger
	debounce   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
	closed     bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher for the database at targetPath.
func New(targetPath string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		targetPath: filepath.Clean(targetPath),
		parentPath: filepath.Dir(filepath.Clean(targetPath)),
		watcher:    fsw,
		changes:    make(chan struct{}, 1),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce:   150 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Changes delivers one value per coalesced burst of writes. Notifications
// are dropped while a previous one is still unread.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. It fails when the parent directory cannot be watched.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.closed {
		return errors.New("watcher stopped")
	}
	if err := w.watcher.Add(w.parentPath); err != nil {
		return fmt.Errorf("watching %s: %w", w.parentPath, err)
	}
	w.running = true
	go w.watchLoop()
	return nil
}

// Stop stops the watcher and releases the underlying fsnotify watcher,
// whether or not Start succeeded. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancel()
	w.running = false
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// relevant reports whether an event path is the database or one of its
// SQLite companion files.
func (w *Watcher) relevant(name string) bool {
	p := filepath.Clean(name)
	if p == w.targetPath {
		return true
	}
	for _, suffix := range []string{"-wal", "-journal"} {
		if p == w.targetPath+suffix {
			return true
		}
	}
	return false
}

func (w *Watcher) watchLoop() {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("database changed", "path", event.Name, "op", strings.ToLower(event.Op.String()))
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.notify)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) notify() {
	if w.ctx.Err() != nil {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
