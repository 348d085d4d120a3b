package cursor

import (
	"fmt"
	"sort"
)

// Cursor represents a single cursor with an optional selection.
// Cursor is an immutable value type.
//
// Head is the active end where typing occurs; Anchor is the fixed end.
// When they are equal the cursor is a caret. The preferred column
// remembers horizontal intent across vertical moves through shorter
// lines and is cleared by any horizontal move.
type Cursor struct {
	Head   Position
	Anchor Position

	preferredCol int
	hasPreferred bool
}

// NewCaret creates a cursor at the given position with no selection.
func NewCaret(pos Position) Cursor {
	return Cursor{Head: pos, Anchor: pos}
}

// NewCursor creates a cursor with a selection from anchor to head.
func NewCursor(anchor, head Position) Cursor {
	return Cursor{Head: head, Anchor: anchor}
}

// HasSelection returns true if the cursor has an active selection.
func (c Cursor) HasSelection() bool {
	return !c.Head.Equals(c.Anchor)
}

// Start returns the earlier of head and anchor.
func (c Cursor) Start() Position {
	return c.Head.Min(c.Anchor)
}

// End returns the later of head and anchor.
func (c Cursor) End() Position {
	return c.Head.Max(c.Anchor)
}

// Selection returns the cursor's span as a Selection value.
func (c Cursor) Selection() Selection {
	return Selection{Anchor: c.Anchor, Head: c.Head}
}

// MoveTo returns a cursor with the head at pos. When extend is false the
// anchor follows the head, collapsing any selection. The preferred
// column is preserved; callers managing vertical movement update it
// explicitly.
func (c Cursor) MoveTo(pos Position, extend bool) Cursor {
	c.Head = pos
	if !extend {
		c.Anchor = pos
	}
	return c
}

// Collapse returns a caret at the head position.
func (c Cursor) Collapse() Cursor {
	c.Anchor = c.Head
	return c
}

// CollapseToStart returns a caret at the selection start.
func (c Cursor) CollapseToStart() Cursor {
	start := c.Start()
	c.Head = start
	c.Anchor = start
	return c
}

// CollapseToEnd returns a caret at the selection end.
func (c Cursor) CollapseToEnd() Cursor {
	end := c.End()
	c.Head = end
	c.Anchor = end
	return c
}

// PreferredColumn returns the remembered column for vertical movement
// and whether one is set.
func (c Cursor) PreferredColumn() (int, bool) {
	return c.preferredCol, c.hasPreferred
}

// WithPreferredColumn returns a cursor remembering the given column.
func (c Cursor) WithPreferredColumn(col int) Cursor {
	c.preferredCol = col
	c.hasPreferred = true
	return c
}

// ClearPreferredColumn returns a cursor with no remembered column.
func (c Cursor) ClearPreferredColumn() Cursor {
	c.preferredCol = 0
	c.hasPreferred = false
	return c
}

// Equals returns true if both cursors match in position, selection, and
// preferred column.
func (c Cursor) Equals(other Cursor) bool {
	return c.Head.Equals(other.Head) &&
		c.Anchor.Equals(other.Anchor) &&
		c.preferredCol == other.preferredCol &&
		c.hasPreferred == other.hasPreferred
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	if !c.HasSelection() {
		return fmt.Sprintf("Cursor%s", c.Head)
	}
	return fmt.Sprintf("Cursor[%s-%s]", c.Anchor, c.Head)
}

// CursorSet manages multiple cursors for multi-cursor editing.
//
// The set is never empty. Cursors are kept sorted by selection start and
// overlapping or touching selections are merged after every mutation.
// The first cursor is the primary.
//
// CursorSet is not thread-safe; it is owned by a single editing session.
type CursorSet struct {
	cursors []Cursor
}

// NewCursorSet creates a cursor set with a single cursor.
func NewCursorSet(primary Cursor) *CursorSet {
	return &CursorSet{cursors: []Cursor{primary}}
}

// NewCaretSet creates a cursor set with a single caret at the given
// position.
func NewCaretSet(pos Position) *CursorSet {
	return NewCursorSet(NewCaret(pos))
}

// Primary returns the primary (first) cursor.
func (cs *CursorSet) Primary() Cursor {
	return cs.cursors[0]
}

// SetPrimary replaces the primary cursor and re-merges the set.
func (cs *CursorSet) SetPrimary(c Cursor) {
	cs.cursors[0] = c
	cs.merge()
}

// Add appends a cursor and merges any resulting overlaps.
func (cs *CursorSet) Add(c Cursor) {
	cs.cursors = append(cs.cursors, c)
	cs.merge()
}

// All returns the cursors in document order. The returned slice is owned
// by the set and must not be modified.
func (cs *CursorSet) All() []Cursor {
	return cs.cursors
}

// Count returns the number of cursors.
func (cs *CursorSet) Count() int {
	return len(cs.cursors)
}

// IsMulti returns true if there is more than one cursor.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.cursors) > 1
}

// CollapseToPrimary removes all cursors except the primary.
func (cs *CursorSet) CollapseToPrimary() {
	if len(cs.cursors) > 1 {
		cs.cursors = cs.cursors[:1:1]
	}
}

// CollapseAll collapses every cursor to a caret at its head. Carets that
// land on the same position merge.
func (cs *CursorSet) CollapseAll() {
	for i := range cs.cursors {
		cs.cursors[i] = cs.cursors[i].Collapse()
	}
	cs.merge()
}

// Map applies fn to every cursor and re-merges the set. Used for bulk
// transformations such as clamping after a content change.
func (cs *CursorSet) Map(fn func(Cursor) Cursor) {
	for i := range cs.cursors {
		cs.cursors[i] = fn(cs.cursors[i])
	}
	cs.merge()
}

// ForEach calls fn for each cursor in document order.
func (cs *CursorSet) ForEach(fn func(Cursor)) {
	for _, c := range cs.cursors {
		fn(c)
	}
}

// Clone creates an independent deep copy of the cursor set. Clones are
// used for history snapshots, which must not alias live state.
func (cs *CursorSet) Clone() *CursorSet {
	cursors := make([]Cursor, len(cs.cursors))
	copy(cursors, cs.cursors)
	return &CursorSet{cursors: cursors}
}

// Equals returns true if both sets contain the same cursors in the same
// order.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil || len(cs.cursors) != len(other.cursors) {
		return false
	}
	for i, c := range cs.cursors {
		if !c.Equals(other.cursors[i]) {
			return false
		}
	}
	return true
}

// merge sorts cursors by selection start and merges overlapping or
// touching selections. The sort is stable, and when an incoming cursor
// extends the running entry its orientation decides which end grows.
func (cs *CursorSet) merge() {
	if len(cs.cursors) <= 1 {
		return
	}

	sort.SliceStable(cs.cursors, func(i, j int) bool {
		return cs.cursors[i].Start().Before(cs.cursors[j].Start())
	})

	merged := make([]Cursor, 0, len(cs.cursors))
	merged = append(merged, cs.cursors[0])

	for _, c := range cs.cursors[1:] {
		last := &merged[len(merged)-1]
		lastEnd := last.End()

		if !c.Start().After(lastEnd) {
			curEnd := c.End()
			if curEnd.After(lastEnd) {
				start := last.Start()
				if c.Head.After(c.Anchor) {
					last.Anchor = start
					last.Head = curEnd
				} else {
					last.Anchor = curEnd
					last.Head = start
				}
			}
		} else {
			merged = append(merged, c)
		}
	}

	cs.cursors = merged
}
