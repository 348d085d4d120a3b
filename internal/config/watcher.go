package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay between the last change event and the
// reload it triggers.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
//
// Editors often save atomically by writing a temp file and renaming it
// over the target, so the watcher monitors the containing directory
// and filters events down to the configured file.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	timer    *time.Timer
	nextID   uint64
	onReload map[uint64]func(*Config)
	onError  map[uint64]func(error)
	wg       sync.WaitGroup
	closed   bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the reload delay after the last change event.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching the configuration file at path. The file does
// not need to exist yet; creating it later triggers the first reload.
func Watch(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := DetectFormat(absPath); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: DefaultDebounce,
		onReload: make(map[uint64]func(*Config)),
		onError:  make(map[uint64]func(error)),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Subscription identifies a registered callback.
type Subscription struct {
	id      uint64
	watcher *Watcher
	isError bool
}

// Unsubscribe removes the callback. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.watcher == nil {
		return
	}
	s.watcher.mu.Lock()
	defer s.watcher.mu.Unlock()
	if s.isError {
		delete(s.watcher.onError, s.id)
	} else {
		delete(s.watcher.onReload, s.id)
	}
}

// OnReload registers a callback invoked with each successfully
// reloaded configuration.
func (w *Watcher) OnReload(fn func(*Config)) *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.onReload[id] = fn
	return &Subscription{id: id, watcher: w}
}

// OnError registers a callback invoked when a reload fails.
func (w *Watcher) OnError(fn func(error)) *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.onError[id] = fn
	return &Subscription{id: id, watcher: w, isError: true}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop consumes filesystem events until the watcher closes.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.notifyError(err)
		}
	}
}

// scheduleReload resets the debounce timer so rapid write bursts
// reload once.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload parses the file and notifies subscribers.
func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		w.notifyError(err)
		return
	}

	w.mu.Lock()
	callbacks := make([]func(*Config), 0, len(w.onReload))
	for _, fn := range w.onReload {
		callbacks = append(callbacks, fn)
	}
	w.mu.Unlock()

	for _, fn := range callbacks {
		safeNotify(func() { fn(cfg) })
	}
}

func (w *Watcher) notifyError(err error) {
	w.mu.Lock()
	callbacks := make([]func(error), 0, len(w.onError))
	for _, fn := range w.onError {
		callbacks = append(callbacks, fn)
	}
	w.mu.Unlock()

	for _, fn := range callbacks {
		safeNotify(func() { fn(err) })
	}
}

// safeNotify keeps a panicking subscriber from killing the watcher
// goroutine.
func safeNotify(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
