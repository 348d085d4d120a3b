package session

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is the delay between the last change event for a file
// and the notification it triggers.
const reloadDebounce = 100 * time.Millisecond

// reloadWatcher watches the files open in a session for external
// changes. Editors often save atomically by writing a temp file and
// renaming it over the target, so it watches containing directories and
// filters events down to registered files.
type reloadWatcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	files  map[string]bool
	dirs   map[string]int
	timers map[string]*time.Timer
	notify func(path string)
	wg     sync.WaitGroup
	closed bool
}

// newReloadWatcher starts a watcher delivering debounced per-file change
// notifications to notify on the watcher goroutine.
func newReloadWatcher(notify func(path string)) (*reloadWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &reloadWatcher{
		fsw:    fsw,
		files:  make(map[string]bool),
		dirs:   make(map[string]int),
		timers: make(map[string]*time.Timer),
		notify: notify,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// watch registers an absolute file path for change notifications.
func (w *reloadWatcher) watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.files[path] {
		return nil
	}

	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	return nil
}

// unwatch removes a file registration, dropping the directory watch when
// it was the last file in that directory.
func (w *reloadWatcher) unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.files[path] {
		return
	}

	delete(w.files, path)
	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir)
	}
}

// close stops the watcher. Safe to call more than once.
func (w *reloadWatcher) close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop consumes filesystem events until the watcher closes.
func (w *reloadWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.schedule(filepath.Clean(ev.Name))

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule arms the debounce timer for a registered file, so a burst of
// write events notifies once.
func (w *reloadWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.files[path] {
		return
	}

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(reloadDebounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.notify(path)
		}
	})
}
