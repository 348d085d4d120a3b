package history

import (
	"time"

	"github.com/dshills/inkstone/internal/editor/cursor"
)

// Default configuration values.
const (
	// DefaultMaxEntries is the default undo stack depth.
	DefaultMaxEntries = 1000

	// DefaultCoalesceWindow is the default window for merging rapid
	// edits into a single undo step.
	DefaultCoalesceWindow = 500 * time.Millisecond
)

// Entry is a snapshot of document state, captured before an edit.
//
// A nil Timestamp marks a checkpoint: pushes arriving after a
// checkpoint never coalesce into it.
type Entry struct {
	Content   string
	Cursors   *cursor.CursorSet
	Timestamp *time.Time
}

// History manages undo and redo stacks of document snapshots.
//
// History is not thread-safe. It is owned by a single editing session
// and accessed synchronously, like the rest of the core.
type History struct {
	undo []Entry
	redo []Entry

	maxEntries int
	window     time.Duration
	suppress   bool

	now func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries sets the maximum undo stack depth. Values below 1 are
// ignored.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n >= 1 {
			h.maxEntries = n
		}
	}
}

// WithCoalesceWindow sets the time window for coalescing rapid edits.
func WithCoalesceWindow(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.window = d
		}
	}
}

// WithClock sets the time source used for coalescing decisions.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates a History with the given options.
func New(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		window:     DefaultCoalesceWindow,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push records a snapshot of the state before an edit.
//
// The push is dropped while a restore is in progress, and also when the
// newest undo entry is timestamped and younger than the coalesce
// window; in the latter case that entry remains the undo target, so a
// burst of rapid edits undoes as one step. Otherwise the redo stack is
// cleared and the undo stack trimmed from the oldest end when it
// exceeds the maximum depth.
func (h *History) Push(content string, cursors *cursor.CursorSet) {
	if h.suppress {
		return
	}

	now := h.now()
	if n := len(h.undo); n > 0 {
		last := h.undo[n-1]
		if last.Timestamp != nil && now.Sub(*last.Timestamp) < h.window {
			return
		}
	}

	h.undo = append(h.undo, Entry{
		Content:   content,
		Cursors:   cursors.Clone(),
		Timestamp: &now,
	})
	h.redo = h.redo[:0]
	h.trim()
}

// PushCheckpoint records a snapshot that future pushes can never
// coalesce into. Checkpoints are always recorded, regardless of how
// recently the previous entry was pushed.
func (h *History) PushCheckpoint(content string, cursors *cursor.CursorSet) {
	if h.suppress {
		return
	}

	h.undo = append(h.undo, Entry{
		Content: content,
		Cursors: cursors.Clone(),
	})
	h.redo = h.redo[:0]
	h.trim()
}

// Undo pops the newest undo entry, pushing the supplied current state
// onto the redo stack. Returns false with no state change when the
// undo stack is empty.
func (h *History) Undo(content string, cursors *cursor.CursorSet) (Entry, bool) {
	n := len(h.undo)
	if n == 0 {
		return Entry{}, false
	}

	entry := h.undo[n-1]
	h.undo = h.undo[:n-1]

	now := h.now()
	h.redo = append(h.redo, Entry{
		Content:   content,
		Cursors:   cursors.Clone(),
		Timestamp: &now,
	})
	return entry, true
}

// Redo pops the newest redo entry, pushing the supplied current state
// onto the undo stack. Returns false with no state change when the
// redo stack is empty.
func (h *History) Redo(content string, cursors *cursor.CursorSet) (Entry, bool) {
	n := len(h.redo)
	if n == 0 {
		return Entry{}, false
	}

	entry := h.redo[n-1]
	h.redo = h.redo[:n-1]

	now := h.now()
	h.undo = append(h.undo, Entry{
		Content:   content,
		Cursors:   cursors.Clone(),
		Timestamp: &now,
	})
	return entry, true
}

// BeginRestore suppresses recording while an undone or redone state is
// being applied through ordinary mutation paths.
func (h *History) BeginRestore() {
	h.suppress = true
}

// EndRestore re-enables recording.
func (h *History) EndRestore() {
	h.suppress = false
}

// CanUndo returns true if an undo entry is available.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if a redo entry is available.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// Clear discards all history.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// SetMaxEntries changes the undo stack depth, trimming oldest entries
// if the stack already exceeds it. Values below 1 are ignored.
func (h *History) SetMaxEntries(n int) {
	if n < 1 {
		return
	}
	h.maxEntries = n
	h.trim()
}

// trim drops the oldest undo entries beyond the configured depth.
func (h *History) trim() {
	if excess := len(h.undo) - h.maxEntries; excess > 0 {
		h.undo = append(h.undo[:0:0], h.undo[excess:]...)
	}
}
