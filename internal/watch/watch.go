// Package watch reports changes to document files. Bursts of filesystem
// events are coalesced into one callback per changed file.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a detected file change. Op is the union of the events
// seen for Path during the debounce window.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Config configures the file watcher.
type Config struct {
	// Files are the files to watch. Their directories are watched so that
	// editors which save by renaming are still seen.
	Files []string

	// Debounce is the quiet period before a change is reported.
	// Default: 100ms.
	Debounce time.Duration
}

// Watcher monitors files for changes.
type Watcher struct {
	config   Config
	files    map[string]bool
	onChange func(Change)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
}

// New creates a new file watcher.
func New(config Config) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	files := make(map[string]bool, len(config.Files))
	for _, f := range config.Files {
		files[clean(f)] = true
	}
	return &Watcher{config: config, files: files}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is done or Stop is called. It returns once the
// underlying watcher is closed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dirs := map[string]bool{}
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return err
		}
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		order   []string
		pending = map[string]fsnotify.Op{}
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			if _, seen := pending[ev.Name]; !seen {
				order = append(order, ev.Name)
			}
			pending[ev.Name] |= ev.Op
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			for _, path := range order {
				if fn != nil {
					fn(Change{Path: path, Op: pending[path]})
				}
				delete(pending, path)
			}
			order = order[:0]
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func clean(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
