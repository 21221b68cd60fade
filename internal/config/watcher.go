package config

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/molnav/internal/input/binding"
)

// ReloadFunc receives the settings and the profile table after a reload.
// profile is nil when the settings name no profile file.
type ReloadFunc func(cfg Config, profile *binding.Table)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits after the last change
// before reloading. Default: 100ms
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLoader sets the loader used for reloads.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		w.loader = l
	}
}

// WithErrorHandler sets a function told about failed reloads and
// fsnotify errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reloads the settings file and its binding profile when either
// changes on disk.
//
// The containing directories are watched rather than the files, so that
// editors which save by renaming a temporary file are followed.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	loader   *Loader
	path     string
	debounce time.Duration
	onReload ReloadFunc
	onError  func(error)

	// Absolute paths of the files whose changes trigger a reload.
	files map[string]bool
	dirs  map[string]bool

	reloads  atomic.Uint64
	failures atomic.Uint64
	closed   bool
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		loader:   NewLoader(),
		path:     abs,
		debounce: 100 * time.Millisecond,
		onReload: onReload,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts following the settings file and the profile cfg names.
func (w *Watcher) Watch(cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	return w.track(cfg)
}

// track replaces the set of watched files. Directories are only ever
// added; a stale one merely produces events that are filtered out.
func (w *Watcher) track(cfg Config) error {
	files := map[string]bool{w.path: true}
	if cfg.Bindings.Profile != "" {
		p, err := filepath.Abs(cfg.Bindings.Profile)
		if err != nil {
			return err
		}
		files[p] = true
	}
	for f := range files {
		dir := filepath.Dir(f)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files = files
	return nil
}

// Files returns the absolute paths of the watched files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Reloads returns the number of successful reloads.
func (w *Watcher) Reloads() uint64 {
	return w.reloads.Load()
}

// Failures returns the number of failed reloads.
func (w *Watcher) Failures() uint64 {
	return w.failures.Load()
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debugf("%s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = w.Reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watch: %v", err)
			w.reportError(err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}

// Reload loads both files now and hands them to the reload function. On
// failure the previous settings stay in effect and the error is returned.
func (w *Watcher) Reload() error {
	cfg, err := w.loader.Load(w.path)
	var table *binding.Table
	if err == nil && cfg.Bindings.Profile != "" {
		table, err = w.loader.LoadProfile(cfg.Bindings.Profile)
	}
	if err != nil {
		w.failures.Add(1)
		logger.Warnf("reload failed, keeping previous settings: %v", err)
		w.reportError(err)
		return err
	}

	w.mu.Lock()
	if !w.closed {
		err = w.track(cfg)
	}
	w.mu.Unlock()
	if err != nil {
		logger.Warnf("watch profile: %v", err)
	}

	w.reloads.Add(1)
	logger.Infof("reloaded %s", w.path)
	if w.onReload != nil {
		w.onReload(cfg, table)
	}
	return nil
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops the watcher. Run returns once it notices.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}
