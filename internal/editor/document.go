package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkstone/internal/editor/cursor"
	"github.com/dshills/inkstone/internal/editor/history"
	"github.com/dshills/inkstone/internal/textutil"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column location in the document. Columns count
	// runes within the line.
	Position = cursor.Position

	// Selection is a directed anchor/head range.
	Selection = cursor.Selection

	// Cursor is a caret or selection with an optional preferred column.
	Cursor = cursor.Cursor

	// CursorSet is the document's multi-cursor collection.
	CursorSet = cursor.CursorSet
)

// Document is the aggregate editing state: content, cursors, history, and
// the version/modified bookkeeping every mutation keeps consistent.
//
// The zero value is not usable; create documents with New.
type Document struct {
	content  string
	cursors  *cursor.CursorSet
	history  *history.History
	version  uint64
	modified bool
	language string

	readOnly     bool
	tabSize      int
	insertSpaces bool
	autoIndent   bool

	historyOpts []history.Option
}

// New creates a Document holding the given initial content, with a single
// caret at the start of the document.
func New(content string, opts ...Option) *Document {
	d := &Document{
		content: content,
		tabSize: DefaultTabSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cursors = cursor.NewCaretSet(cursor.Position{})
	d.history = history.New(d.historyOpts...)
	return d
}

// Content returns the full document text.
func (d *Document) Content() string {
	return d.content
}

// Len returns the length of the content in runes.
func (d *Document) Len() int {
	return utf8.RuneCountInString(d.content)
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	if d.content == "" {
		return 1
	}
	return strings.Count(d.content, "\n") + 1
}

// Line returns the text of line i without its trailing newline, and false
// when i is out of range.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= d.LineCount() {
		return "", false
	}
	return strings.Split(d.content, "\n")[i], true
}

// Version returns the mutation counter. It increments exactly once per
// successful mutating operation, so hosts can compare versions to detect
// staleness.
func (d *Document) Version() uint64 {
	return d.version
}

// IsModified reports whether the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// SetModified sets the unsaved-changes flag. Hosts clear it after a save.
func (d *Document) SetModified(modified bool) {
	d.modified = modified
}

// Language returns the document's language tag, or "" when unset.
func (d *Document) Language() string {
	return d.language
}

// SetLanguage sets the document's language tag.
func (d *Document) SetLanguage(language string) {
	d.language = language
}

// ReadOnly reports whether mutations are rejected.
func (d *Document) ReadOnly() bool {
	return d.readOnly
}

// SetReadOnly toggles read-only mode.
func (d *Document) SetReadOnly(readOnly bool) {
	d.readOnly = readOnly
}

// Cursors returns the live cursor set. The set maintains its own
// invariants (non-empty, sorted, non-overlapping), so callers may add or
// collapse cursors through it directly.
func (d *Document) Cursors() *cursor.CursorSet {
	return d.cursors
}

// CursorPosition returns the primary cursor's head.
func (d *Document) CursorPosition() cursor.Position {
	return d.cursors.Primary().Head
}

// SetCursor collapses the primary cursor to a caret at pos, clamped to the
// document. Secondary cursors are unaffected.
func (d *Document) SetCursor(pos cursor.Position) {
	d.cursors.SetPrimary(cursor.NewCaret(d.clampPosition(pos)))
}

// SetSelection replaces the primary cursor with a selection from anchor to
// head, both clamped to the document.
func (d *Document) SetSelection(anchor, head cursor.Position) {
	d.cursors.SetPrimary(cursor.NewCursor(d.clampPosition(anchor), d.clampPosition(head)))
}

// SetCursors replaces the whole cursor set. Positions are clamped to the
// document. A nil set is ignored.
func (d *Document) SetCursors(set *cursor.CursorSet) {
	if set == nil {
		return
	}
	d.cursors = set
	d.clampCursors()
}

// AddCursor adds a cursor to the set, clamped to the document. Overlapping
// cursors merge per the set's rules.
func (d *Document) AddCursor(c cursor.Cursor) {
	c.Head = d.clampPosition(c.Head)
	c.Anchor = d.clampPosition(c.Anchor)
	d.cursors.Add(c)
}

// SelectedText returns the text covered by the primary selection, or ""
// for a caret.
func (d *Document) SelectedText() string {
	primary := d.cursors.Primary()
	if !primary.HasSelection() {
		return ""
	}
	start, err := d.PositionToOffset(primary.Start())
	if err != nil {
		return ""
	}
	end, err := d.PositionToOffset(primary.End())
	if err != nil {
		return ""
	}
	return d.content[textutil.ByteIndex(d.content, start):textutil.ByteIndex(d.content, end)]
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// History exposes the undo/redo manager, e.g. for placing checkpoints at
// save points.
func (d *Document) History() *history.History {
	return d.history
}

// PositionToOffset converts a position to a rune offset into the content.
// It returns ErrPositionOutOfRange when pos.Line is not an existing line or
// pos.Column is past the end of that line.
func (d *Document) PositionToOffset(pos cursor.Position) (int, error) {
	return positionToOffset(d.content, pos)
}

// OffsetToPosition converts a rune offset to a position. It returns
// ErrOffsetOutOfRange when offset is negative or past the end of the
// content; the offset equal to Len() maps to the position just past the
// last character.
func (d *Document) OffsetToPosition(offset int) (cursor.Position, error) {
	return offsetToPosition(d.content, offset)
}

func positionToOffset(content string, pos cursor.Position) (int, error) {
	if pos.Line < 0 || pos.Column < 0 {
		return 0, ErrPositionOutOfRange
	}
	lines := strings.Split(content, "\n")
	if pos.Line >= len(lines) {
		return 0, ErrPositionOutOfRange
	}
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}
	if pos.Column > utf8.RuneCountInString(lines[pos.Line]) {
		return 0, ErrPositionOutOfRange
	}
	return offset + pos.Column, nil
}

func offsetToPosition(content string, offset int) (cursor.Position, error) {
	if offset < 0 || offset > utf8.RuneCountInString(content) {
		return cursor.Position{}, ErrOffsetOutOfRange
	}
	var pos cursor.Position
	idx := 0
	for _, r := range content {
		if idx == offset {
			return pos, nil
		}
		if r == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
		idx++
	}
	return pos, nil
}

// Insert inserts text at the primary cursor. An active primary selection is
// deleted first (replace semantics), and the cursor collapses to a caret
// immediately after the inserted text. It reports whether the document
// changed.
func (d *Document) Insert(text string) bool {
	if d.readOnly {
		return false
	}
	primary := d.cursors.Primary()
	var start, end int
	if primary.HasSelection() {
		s, err := d.PositionToOffset(primary.Start())
		if err != nil {
			return false
		}
		e, err := d.PositionToOffset(primary.End())
		if err != nil {
			return false
		}
		start, end = s, e
	} else {
		off, err := d.PositionToOffset(primary.Head)
		if err != nil {
			return false
		}
		start, end = off, off
	}

	d.history.Push(d.content, d.cursors)
	d.content = spliceRunes(d.content, start, end, text)
	if pos, err := d.OffsetToPosition(start + utf8.RuneCountInString(text)); err == nil {
		d.cursors.SetPrimary(cursor.NewCaret(pos))
	}
	d.clampCursors()
	d.version++
	d.modified = true
	return true
}

// DeleteBackward removes the rune before the primary caret, or the primary
// selection if one is active. It reports whether the document changed; at
// the start of the document it is a no-op.
func (d *Document) DeleteBackward() bool {
	if d.readOnly {
		return false
	}
	primary := d.cursors.Primary()
	if primary.HasSelection() {
		return d.deleteSelection()
	}
	off, err := d.PositionToOffset(primary.Head)
	if err != nil || off == 0 {
		return false
	}

	d.history.Push(d.content, d.cursors)
	d.content = spliceRunes(d.content, off-1, off, "")
	if pos, err := d.OffsetToPosition(off - 1); err == nil {
		d.cursors.SetPrimary(cursor.NewCaret(pos))
	}
	d.clampCursors()
	d.version++
	d.modified = true
	return true
}

// DeleteForward removes the rune after the primary caret, or the primary
// selection if one is active. The caret does not move. It reports whether
// the document changed; at the end of the document it is a no-op.
func (d *Document) DeleteForward() bool {
	if d.readOnly {
		return false
	}
	primary := d.cursors.Primary()
	if primary.HasSelection() {
		return d.deleteSelection()
	}
	off, err := d.PositionToOffset(primary.Head)
	if err != nil || off >= d.Len() {
		return false
	}

	d.history.Push(d.content, d.cursors)
	d.content = spliceRunes(d.content, off, off+1, "")
	d.clampCursors()
	d.version++
	d.modified = true
	return true
}

// deleteSelection removes the primary selection's half-open range and
// collapses the caret to the start of the removed range.
func (d *Document) deleteSelection() bool {
	primary := d.cursors.Primary()
	startPos := primary.Start()
	start, err := d.PositionToOffset(startPos)
	if err != nil {
		return false
	}
	end, err := d.PositionToOffset(primary.End())
	if err != nil {
		return false
	}

	d.history.Push(d.content, d.cursors)
	d.content = spliceRunes(d.content, start, end, "")
	d.cursors.SetPrimary(cursor.NewCaret(startPos))
	d.clampCursors()
	d.version++
	d.modified = true
	return true
}

// InsertAtAll inserts text at every cursor, replacing active selections.
// Spans are resolved against the pre-edit content and applied back to
// front so earlier offsets stay valid; each cursor collapses to a caret
// after its insertion. It reports whether the document changed.
func (d *Document) InsertAtAll(text string) bool {
	if d.readOnly {
		return false
	}
	if !d.cursors.IsMulti() {
		return d.Insert(text)
	}

	type span struct{ start, end int }
	all := d.cursors.All()
	spans := make([]span, 0, len(all))
	for _, c := range all {
		start, err := d.PositionToOffset(c.Start())
		if err != nil {
			return false
		}
		end, err := d.PositionToOffset(c.End())
		if err != nil {
			return false
		}
		spans = append(spans, span{start, end})
	}

	d.history.Push(d.content, d.cursors)

	// The set keeps cursors sorted and non-overlapping, so the spans are
	// ascending and disjoint.
	content := d.content
	for i := len(spans) - 1; i >= 0; i-- {
		content = spliceRunes(content, spans[i].start, spans[i].end, text)
	}
	d.content = content

	textLen := utf8.RuneCountInString(text)
	delta := 0
	rebuilt := make([]cursor.Cursor, 0, len(spans))
	for _, sp := range spans {
		pos, err := d.OffsetToPosition(sp.start + delta + textLen)
		if err != nil {
			pos = d.endPosition()
		}
		rebuilt = append(rebuilt, cursor.NewCaret(pos))
		delta += textLen - (sp.end - sp.start)
	}
	set := cursor.NewCursorSet(rebuilt[0])
	for _, c := range rebuilt[1:] {
		set.Add(c)
	}
	d.cursors = set

	d.version++
	d.modified = true
	return true
}

// SetContent replaces the whole content as a local, undoable edit. The old
// state is snapshotted to history first; cursors are clamped to the new
// content. A call with identical content is a no-op and reports false.
func (d *Document) SetContent(content string) bool {
	if content == d.content {
		return false
	}
	d.history.Push(d.content, d.cursors)
	d.content = content
	d.clampCursors()
	d.version++
	d.modified = true
	return true
}

// ReplaceContent replaces the whole content without touching history, for
// externally driven updates (file reload, sync) that must not become local
// undo steps. Cursors are carried across the change by diffing old and new
// content. The version still increments so observers re-render.
func (d *Document) ReplaceContent(content string) {
	old := d.content
	d.content = content
	d.remapCursors(old, content)
	d.version++
}

// Undo restores the most recent history entry, pushing the current state
// onto the redo stack. It reports false when there is nothing to undo.
func (d *Document) Undo() bool {
	entry, ok := d.history.Undo(d.content, d.cursors)
	if !ok {
		return false
	}
	d.content = entry.Content
	d.cursors = entry.Cursors
	d.version++
	return true
}

// Redo reverses the most recent undo, pushing the current state onto the
// undo stack. It reports false when there is nothing to redo.
func (d *Document) Redo() bool {
	entry, ok := d.history.Redo(d.content, d.cursors)
	if !ok {
		return false
	}
	d.content = entry.Content
	d.cursors = entry.Cursors
	d.version++
	return true
}

// clampPosition clamps pos to a valid position within the content.
func (d *Document) clampPosition(pos cursor.Position) cursor.Position {
	lines := strings.Split(d.content, "\n")
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(lines) {
		pos.Line = len(lines) - 1
	}
	if pos.Column < 0 {
		pos.Column = 0
	}
	if max := utf8.RuneCountInString(lines[pos.Line]); pos.Column > max {
		pos.Column = max
	}
	return pos
}

// clampCursors clamps every cursor to the current content, merging any
// cursors the clamp made overlap.
func (d *Document) clampCursors() {
	d.cursors.Map(func(c cursor.Cursor) cursor.Cursor {
		c.Head = d.clampPosition(c.Head)
		c.Anchor = d.clampPosition(c.Anchor)
		return c
	})
}

// endPosition returns the position just past the last character.
func (d *Document) endPosition() cursor.Position {
	lines := strings.Split(d.content, "\n")
	return cursor.Position{
		Line:   len(lines) - 1,
		Column: utf8.RuneCountInString(lines[len(lines)-1]),
	}
}

// spliceRunes replaces the half-open rune range [start, end) of s with
// repl.
func spliceRunes(s string, start, end int, repl string) string {
	bs := textutil.ByteIndex(s, start)
	be := textutil.ByteIndex(s, end)
	return s[:bs] + repl + s[be:]
}
