// Package watch reloads a dictionary when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/milon/internal/logger"
)

// DefaultDebounce collapses the burst of events one save produces.
const DefaultDebounce = 250 * time.Millisecond

// Opener is the part of driving.SpellService the watcher drives.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period after the last event before reloading.
	Debounce time.Duration

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

// Watcher re-opens a dictionary on write, create or rename-into-place.
type Watcher struct {
	target Opener
	path   string
	opts   Options
	fsw    *fsnotify.Watcher
}

// New watches the directory holding path. Watching the directory rather
// than the file survives editors and writers that replace the file.
func New(target Opener, path string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		target: target,
		path:   filepath.Clean(abs),
		opts:   opts,
		fsw:    fsw,
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("watch: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.path, err)

		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload(ctx context.Context) {
	err := w.target.Open(ctx, w.path)
	if err != nil {
		logger.Warn("reload %s failed, keeping current dictionary: %v", w.path, err)
	} else {
		logger.Info("reloaded %s", w.path)
	}
	if w.opts.OnReload != nil {
		w.opts.OnReload(err)
	}
}

// Close stops watching. Run returns once the event channels close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
