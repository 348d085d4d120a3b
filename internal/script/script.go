// Package script runs user-supplied Lua text transforms against a
// document.
//
// A transform is a Lua chunk defining `transform(text) -> text`. The
// runner executes chunks in a sandboxed state: only the base, table,
// string, and math libraries are open, and the chunk-loading globals are
// removed, so a transform can compute over the text it is given and
// nothing else. Applying a transform routes the result through
// SetContent, so it lands in history as a single undoable edit.
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkstone/internal/editor"
)

// transformGlobal is the function a chunk must define.
const transformGlobal = "transform"

// Errors for runner operations.
var (
	// ErrRunnerClosed is returned when operating on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrNoTransform indicates the loaded chunk does not define a
	// transform function.
	ErrNoTransform = errors.New("chunk does not define transform(text)")

	// ErrBadResult indicates transform returned something other than a
	// string.
	ErrBadResult = errors.New("transform did not return a string")
)

// Runner executes Lua text transforms.
//
// The underlying Lua state is not goroutine-safe; the mutex serializes
// access so a Runner may be shared, but a single transform still runs
// on one goroutine at a time.
type Runner struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
	loaded bool
}

// Option configures a Runner.
type Option func(*lua.Options)

// WithCallStackSize caps the Lua call stack depth, bounding runaway
// recursion in a transform.
func WithCallStackSize(n int) Option {
	return func(o *lua.Options) {
		if n > 0 {
			o.CallStackSize = n
		}
	}
}

// WithRegistrySize sets the initial Lua registry size.
func WithRegistrySize(n int) Option {
	return func(o *lua.Options) {
		if n > 0 {
			o.RegistrySize = n
		}
	}
}

// New creates a sandboxed Runner.
func New(opts ...Option) *Runner {
	options := lua.Options{SkipOpenLibs: true}
	for _, opt := range opts {
		opt(&options)
	}

	L := lua.NewState(options)
	openSafeLibraries(L)
	removeLoaders(L)

	return &Runner{state: L}
}

// openSafeLibraries opens the libraries a text transform may use. The
// io, os, debug, and package libraries stay closed: transforms have no
// business touching the filesystem or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// removeLoaders strips the chunk-loading globals the base library
// registers, so a transform cannot smuggle in code the host never saw.
func removeLoaders(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Load executes a chunk and verifies it defined transform(text).
func (r *Runner) Load(chunk string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	if err := r.doWithRecovery(func() error { return r.state.DoString(chunk) }); err != nil {
		return fmt.Errorf("loading transform chunk: %w", err)
	}

	if r.state.GetGlobal(transformGlobal).Type() != lua.LTFunction {
		return ErrNoTransform
	}
	r.loaded = true
	return nil
}

// LoadFile reads a chunk from disk and loads it.
func (r *Runner) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading transform script %s: %w", path, err)
	}
	return r.Load(string(data))
}

// Transform runs the loaded transform over text and returns the result.
func (r *Runner) Transform(text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrRunnerClosed
	}
	if !r.loaded {
		return "", ErrNoTransform
	}

	var result string
	err := r.doWithRecovery(func() error {
		L := r.state
		top := L.GetTop()

		L.Push(L.GetGlobal(transformGlobal))
		L.Push(lua.LString(text))
		if err := L.PCall(1, 1, nil); err != nil {
			return fmt.Errorf("running transform: %w", err)
		}

		ret := L.Get(-1)
		L.SetTop(top)

		str, ok := ret.(lua.LString)
		if !ok {
			return fmt.Errorf("%w (got %s)", ErrBadResult, ret.Type())
		}
		result = string(str)
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// Apply transforms the document's content and applies the result through
// SetContent, making the whole transform one undoable edit. It reports
// whether the document changed.
func (r *Runner) Apply(doc *editor.Document) (bool, error) {
	out, err := r.Transform(doc.Content())
	if err != nil {
		return false, err
	}
	return doc.SetContent(out), nil
}

// doWithRecovery converts a Lua panic into an error.
func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// IsClosed reports whether the runner has been closed.
func (r *Runner) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close releases the Lua state. Safe to call more than once.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.state.Close()
	r.closed = true
}
