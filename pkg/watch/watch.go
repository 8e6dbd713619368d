// Package watch reloads a tree file when it changes on disk.
//
// The watcher observes the file's directory rather than the file itself, so
// editors that save by writing a temp file and renaming it over the original
// keep being tracked. Bursts of events are debounced, and after the quiet
// period the whole file is read and handed to the change callback.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a single file.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher

	debounceDelay time.Duration
	timerMu       sync.Mutex
	debounceTimer *time.Timer

	onChange func(data []byte)
	onError  func(error)

	done     chan struct{}
	stopOnce sync.Once
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounceDelay = d
		}
	}
}

// WithOnChange sets the callback that receives the file's complete contents.
func WithOnChange(fn func(data []byte)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback for watch and read errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// New creates a watcher for path. The file's directory must exist.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		path:          abs,
		fsWatcher:     fsWatcher,
		debounceDelay: DefaultDebounce,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run processes events until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.timerMu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.timerMu.Unlock()
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Removal is ignored; a rename-over save is followed by a Create.
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.fire)
}

// fire reads the settled file and passes it on.
func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		w.reportError(fmt.Errorf("read %s: %w", w.path, err))
		return
	}
	if w.onChange != nil {
		w.onChange(data)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
