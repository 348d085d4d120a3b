package cursor

import "fmt"

// Selection represents a contiguous span of text between two positions.
// Selection is an immutable value type: methods return new selections
// rather than mutating.
//
// The selection model uses anchor and head:
//   - Anchor: where the selection started (fixed end)
//   - Head: the active end (moves as the selection is extended)
//
// When Anchor == Head, the selection is a caret.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCaretSelection creates an empty selection (caret) at the given
// position.
func NewCaretSelection(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// IsEmpty returns true if the selection is a caret (no extent).
func (s Selection) IsEmpty() bool {
	return s.Anchor.Equals(s.Head)
}

// IsForward returns true if the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// IsBackward returns true if the head is before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Start returns the earlier of anchor and head.
func (s Selection) Start() Position {
	return s.Anchor.Min(s.Head)
}

// End returns the later of anchor and head.
func (s Selection) End() Position {
	return s.Anchor.Max(s.Head)
}

// Normalize returns a selection with anchor at the start and head at the
// end, discarding direction.
func (s Selection) Normalize() Selection {
	return Selection{Anchor: s.Start(), Head: s.End()}
}

// Contains returns true if the position falls inside the selection.
// The range is half-open: the start is included, the end is not.
// An empty selection contains nothing.
func (s Selection) Contains(pos Position) bool {
	start, end := s.Start(), s.End()
	return !pos.Before(start) && pos.Before(end)
}

// Overlaps returns true if the two selections share at least one
// position under half-open semantics. Selections that merely touch do
// not overlap.
func (s Selection) Overlaps(other Selection) bool {
	return s.Start().Before(other.End()) && other.Start().Before(s.End())
}

// Touches returns true if the selections overlap or are adjacent.
func (s Selection) Touches(other Selection) bool {
	return !other.End().Before(s.Start()) && !s.End().Before(other.Start())
}

// Merge returns the union of two selections when they overlap or touch.
// The merged selection keeps s's direction. Returns ok=false when the
// selections are disjoint.
func (s Selection) Merge(other Selection) (Selection, bool) {
	if !s.Touches(other) {
		return s, false
	}
	start := s.Start().Min(other.Start())
	end := s.End().Max(other.End())
	if s.IsBackward() {
		return Selection{Anchor: end, Head: start}, true
	}
	return Selection{Anchor: start, Head: end}, true
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret%s", s.Head)
	}
	return fmt.Sprintf("Selection[%s-%s]", s.Anchor, s.Head)
}

// Equals returns true if both selections have the same anchor and head.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor.Equals(other.Anchor) && s.Head.Equals(other.Head)
}

// SameRange returns true if both selections cover the same span,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start().Equals(other.Start()) && s.End().Equals(other.End())
}
