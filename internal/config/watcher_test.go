package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkstone.toml")
	writeConfig(t, path, "[editor]\ntab_size = 4\n")

	w, err := Watch(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	writeConfig(t, path, "[editor]\ntab_size = 8\n")

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabSize != 8 {
			t.Errorf("TabSize = %d, want 8", cfg.Editor.TabSize)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReloadsOnCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkstone.toml")

	w, err := Watch(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	writeConfig(t, path, "[editor]\ntab_size = 2\n")

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabSize != 2 {
			t.Errorf("TabSize = %d, want 2", cfg.Editor.TabSize)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload of created file")
	}
}

func TestWatcherReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkstone.toml")
	writeConfig(t, path, "[editor]\ntab_size = 4\n")

	w, err := Watch(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	failed := make(chan error, 1)
	w.OnError(func(err error) {
		select {
		case failed <- err:
		default:
		}
	})

	writeConfig(t, path, "[editor\nbroken")

	select {
	case err := <-failed:
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("error %T is not a ParseError", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for error notification")
	}
}

func TestWatcherUnsubscribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkstone.toml")
	writeConfig(t, path, "[editor]\ntab_size = 4\n")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	sub := w.OnReload(func(*Config) {})
	sub.Unsubscribe()
	sub.Unsubscribe()

	w.mu.Lock()
	remaining := len(w.onReload)
	w.mu.Unlock()
	if remaining != 0 {
		t.Errorf("%d callbacks still registered after Unsubscribe", remaining)
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkstone.toml")
	writeConfig(t, path, "[editor]\ntab_size = 4\n")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatchRejectsUnknownFormat(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "settings.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}
