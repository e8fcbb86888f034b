// Package watch reports changes to icon folders.
//
// A Watcher observes one or more folders (not recursively, matching how
// folders are read for generation) and calls back once per folder after its
// events have settled. Editors often write a file several times per save, and
// a checkout can touch many icons at once; both collapse into a single
// callback per quiet period.
package watch

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 150 * time.Millisecond

// File names and suffixes that never trigger a callback.
var ignoreSuffixes = []string{
	".swp",
	".swx",
	".tmp",
	"~",
}

var ignoreFiles = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
	"4913":      true, // vim write probe
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event of a folder.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher monitors folders and reports them by key.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	keys    map[string]string // absolute folder -> key
	timers  map[string]*time.Timer
	done    chan struct{}
	stopped bool
}

// New creates a watcher with no folders.
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:       fw,
		debounce: DefaultDebounce,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		keys:     make(map[string]string),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching dir and reports its changes under key.
func (w *Watcher) Add(key, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(abs); err != nil {
		return err
	}
	w.mu.Lock()
	w.keys[abs] = key
	w.mu.Unlock()
	return nil
}

// Run delivers change notifications until ctx is done or the watcher is
// closed. onChange is called from the Run goroutine, one key at a time, so a
// slow callback delays later notifications but never overlaps with itself.
func (w *Watcher) Run(ctx context.Context, onChange func(key string)) error {
	fire := make(chan string)
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if key, ok := w.keyFor(event.Name); ok {
				w.schedule(ctx, key, fire)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case key := <-fire:
			onChange(key)
		}
	}
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) keyFor(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key, ok := w.keys[filepath.Dir(path)]
	if !ok {
		// Events on the watched folder itself (removal, rename).
		key, ok = w.keys[path]
	}
	return key, ok
}

// schedule restarts the quiet period for key.
func (w *Watcher) schedule(ctx context.Context, key string, fire chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.timers[key]; ok {
		prev.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.timers[key] == t {
			delete(w.timers, key)
		}
		w.mu.Unlock()
		select {
		case fire <- key:
		case <-ctx.Done():
		case <-w.done:
		}
	})
	w.timers[key] = t
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, t := range w.timers {
		t.Stop()
		delete(w.timers, key)
	}
}

// relevant reports whether event can change the generated artifacts.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !ignored(event.Name)
}

func ignored(path string) bool {
	base := filepath.Base(path)
	if ignoreFiles[base] || strings.HasPrefix(base, ".#") {
		return true
	}
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
