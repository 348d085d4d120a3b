package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkstone/internal/editor/cursor"
	"github.com/dshills/inkstone/internal/textutil"
)

// Movement operations act on the primary cursor. With extend the selection
// grows from the anchor; without it the cursor collapses to a caret.
// Horizontal moves clear the preferred column, vertical moves keep it so
// the cursor springs back to its original column after crossing short
// lines.

// MoveLeft moves one rune left, wrapping to the end of the previous line.
// Without extend, an active selection collapses to its start instead.
func (d *Document) MoveLeft(extend bool) {
	primary := d.cursors.Primary()
	if !extend && primary.HasSelection() {
		d.cursors.SetPrimary(cursor.NewCaret(primary.Start()))
		return
	}
	off, err := d.PositionToOffset(primary.Head)
	if err != nil || off == 0 {
		return
	}
	pos, err := d.OffsetToPosition(off - 1)
	if err != nil {
		return
	}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// MoveRight moves one rune right, wrapping to the start of the next line.
// Without extend, an active selection collapses to its end instead.
func (d *Document) MoveRight(extend bool) {
	primary := d.cursors.Primary()
	if !extend && primary.HasSelection() {
		d.cursors.SetPrimary(cursor.NewCaret(primary.End()))
		return
	}
	off, err := d.PositionToOffset(primary.Head)
	if err != nil || off >= d.Len() {
		return
	}
	pos, err := d.OffsetToPosition(off + 1)
	if err != nil {
		return
	}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// MoveUp moves to the previous line, aiming for the preferred column. On
// the first line the cursor moves to the start of the document.
func (d *Document) MoveUp(extend bool) {
	d.moveVertical(-1, extend)
}

// MoveDown moves to the next line, aiming for the preferred column. On the
// last line the cursor moves to the end of the document.
func (d *Document) MoveDown(extend bool) {
	d.moveVertical(1, extend)
}

func (d *Document) moveVertical(delta int, extend bool) {
	primary := d.cursors.Primary()
	head := primary.Head
	target := head.Line + delta

	if target < 0 {
		d.cursors.SetPrimary(primary.MoveTo(cursor.Position{}, extend).ClearPreferredColumn())
		return
	}
	if target >= d.LineCount() {
		d.cursors.SetPrimary(primary.MoveTo(d.endPosition(), extend).ClearPreferredColumn())
		return
	}

	sought := head.Column
	if pc, ok := primary.PreferredColumn(); ok {
		sought = pc
	}
	col := sought
	if max := d.lineLength(target); col > max {
		col = max
	}
	next := primary.MoveTo(cursor.Position{Line: target, Column: col}, extend).WithPreferredColumn(sought)
	d.cursors.SetPrimary(next)
}

// MoveLineStart moves to column zero of the current line.
func (d *Document) MoveLineStart(extend bool) {
	primary := d.cursors.Primary()
	pos := cursor.Position{Line: primary.Head.Line}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// MoveLineEnd moves past the last rune of the current line.
func (d *Document) MoveLineEnd(extend bool) {
	primary := d.cursors.Primary()
	pos := cursor.Position{Line: primary.Head.Line, Column: d.lineLength(primary.Head.Line)}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// MoveDocStart moves to the beginning of the document.
func (d *Document) MoveDocStart(extend bool) {
	primary := d.cursors.Primary()
	d.cursors.SetPrimary(primary.MoveTo(cursor.Position{}, extend).ClearPreferredColumn())
}

// MoveDocEnd moves past the last rune of the document.
func (d *Document) MoveDocEnd(extend bool) {
	primary := d.cursors.Primary()
	d.cursors.SetPrimary(primary.MoveTo(d.endPosition(), extend).ClearPreferredColumn())
}

// MoveWordLeft moves to the start of the previous word.
func (d *Document) MoveWordLeft(extend bool) {
	primary := d.cursors.Primary()
	off, err := d.PositionToOffset(primary.Head)
	if err != nil {
		return
	}
	runes := []rune(d.content)
	for off > 0 && !textutil.IsWordRune(runes[off-1]) {
		off--
	}
	for off > 0 && textutil.IsWordRune(runes[off-1]) {
		off--
	}
	pos, err := d.OffsetToPosition(off)
	if err != nil {
		return
	}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// MoveWordRight moves past the end of the next word.
func (d *Document) MoveWordRight(extend bool) {
	primary := d.cursors.Primary()
	off, err := d.PositionToOffset(primary.Head)
	if err != nil {
		return
	}
	runes := []rune(d.content)
	for off < len(runes) && !textutil.IsWordRune(runes[off]) {
		off++
	}
	for off < len(runes) && textutil.IsWordRune(runes[off]) {
		off++
	}
	pos, err := d.OffsetToPosition(off)
	if err != nil {
		return
	}
	d.cursors.SetPrimary(primary.MoveTo(pos, extend).ClearPreferredColumn())
}

// SelectWord selects the word at or immediately before the primary head.
// No-op when the head does not touch a word.
func (d *Document) SelectWord() {
	head := d.cursors.Primary().Head
	line, ok := d.Line(head.Line)
	if !ok {
		return
	}
	start, end, ok := textutil.WordAt(line, head.Column)
	if !ok {
		return
	}
	d.SetSelection(
		cursor.Position{Line: head.Line, Column: start},
		cursor.Position{Line: head.Line, Column: end},
	)
}

// SelectLine selects the primary cursor's whole line including its
// trailing newline. On the last line the selection ends at the line end.
func (d *Document) SelectLine() {
	head := d.cursors.Primary().Head
	anchor := cursor.Position{Line: head.Line}
	end := cursor.Position{Line: head.Line + 1}
	if head.Line+1 >= d.LineCount() {
		end = cursor.Position{Line: head.Line, Column: d.lineLength(head.Line)}
	}
	d.SetSelection(anchor, end)
}

// SelectAll collapses to a single cursor selecting the entire document.
func (d *Document) SelectAll() {
	d.cursors = cursor.NewCursorSet(cursor.NewCursor(cursor.Position{}, d.endPosition()))
}

// InsertTab inserts a tab at the primary cursor: spaces up to the next tab
// stop when the document is configured for soft tabs, a literal '\t'
// otherwise.
func (d *Document) InsertTab() bool {
	if !d.insertSpaces {
		return d.Insert("\t")
	}
	col := d.cursors.Primary().Start().Column
	return d.Insert(strings.Repeat(" ", d.tabSize-col%d.tabSize))
}

// InsertNewline inserts a line break. With auto-indent enabled, the new
// line starts with the current line's leading whitespace.
func (d *Document) InsertNewline() bool {
	if !d.autoIndent {
		return d.Insert("\n")
	}
	line, _ := d.Line(d.cursors.Primary().Start().Line)
	return d.Insert("\n" + textutil.LeadingIndent(line))
}

// lineLength returns the rune length of line i, or 0 when out of range.
func (d *Document) lineLength(i int) int {
	line, ok := d.Line(i)
	if !ok {
		return 0
	}
	return utf8.RuneCountInString(line)
}
