package editor

import (
	"time"

	"github.com/dshills/inkstone/internal/editor/history"
)

// Default configuration values.
const (
	DefaultTabSize = 4
)

// Option configures a Document during creation.
type Option func(*Document)

// WithLanguage sets the document's language tag (e.g. "markdown", "go").
func WithLanguage(language string) Option {
	return func(d *Document) {
		d.language = language
	}
}

// WithReadOnly creates a read-only document.
// Mutating operations report false and leave the document untouched.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// WithTabSize sets the tab stop width used by InsertTab.
func WithTabSize(size int) Option {
	return func(d *Document) {
		if size > 0 {
			d.tabSize = size
		}
	}
}

// WithInsertSpaces makes InsertTab emit spaces up to the next tab stop
// instead of a literal tab character.
func WithInsertSpaces() Option {
	return func(d *Document) {
		d.insertSpaces = true
	}
}

// WithAutoIndent makes InsertNewline copy the current line's leading
// whitespace onto the new line.
func WithAutoIndent() Option {
	return func(d *Document) {
		d.autoIndent = true
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		d.historyOpts = append(d.historyOpts, history.WithMaxEntries(max))
	}
}

// WithCoalesceWindow sets the window inside which rapid edits collapse
// into a single undo step.
func WithCoalesceWindow(window time.Duration) Option {
	return func(d *Document) {
		d.historyOpts = append(d.historyOpts, history.WithCoalesceWindow(window))
	}
}

// WithClock overrides the history clock. Tests use this to simulate
// elapsed time without sleeping.
func WithClock(now func() time.Time) Option {
	return func(d *Document) {
		d.historyOpts = append(d.historyOpts, history.WithClock(now))
	}
}
