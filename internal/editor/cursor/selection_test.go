package cursor

import "testing"

func TestNewCaretSelection(t *testing.T) {
	sel := NewCaretSelection(NewPosition(2, 4))

	if !sel.IsEmpty() {
		t.Error("caret selection should be empty")
	}
	if !sel.Anchor.Equals(sel.Head) {
		t.Error("caret selection should have anchor == head")
	}
}

func TestSelectionStartEnd(t *testing.T) {
	forward := NewSelection(NewPosition(0, 2), NewPosition(0, 8))
	if !forward.Start().Equals(NewPosition(0, 2)) || !forward.End().Equals(NewPosition(0, 8)) {
		t.Errorf("forward selection bounds wrong: start %s end %s", forward.Start(), forward.End())
	}

	backward := NewSelection(NewPosition(1, 4), NewPosition(0, 1))
	if !backward.Start().Equals(NewPosition(0, 1)) || !backward.End().Equals(NewPosition(1, 4)) {
		t.Errorf("backward selection bounds wrong: start %s end %s", backward.Start(), backward.End())
	}
}

func TestSelectionDirection(t *testing.T) {
	forward := NewSelection(NewPosition(0, 0), NewPosition(0, 5))
	if !forward.IsForward() || forward.IsBackward() {
		t.Error("selection with head after anchor should be forward")
	}

	backward := NewSelection(NewPosition(0, 5), NewPosition(0, 0))
	if backward.IsForward() || !backward.IsBackward() {
		t.Error("selection with head before anchor should be backward")
	}
}

func TestSelectionNormalize(t *testing.T) {
	backward := NewSelection(NewPosition(0, 5), NewPosition(0, 0))
	norm := backward.Normalize()

	if !norm.Anchor.Equals(NewPosition(0, 0)) || !norm.Head.Equals(NewPosition(0, 5)) {
		t.Errorf("normalize should order anchor before head, got %s", norm)
	}
	if !norm.SameRange(backward) {
		t.Error("normalize should not change the covered range")
	}
}

func TestSelectionContains(t *testing.T) {
	sel := NewSelection(NewPosition(0, 2), NewPosition(0, 6))

	if sel.Contains(NewPosition(0, 1)) {
		t.Error("position before start should not be contained")
	}
	if !sel.Contains(NewPosition(0, 2)) {
		t.Error("start should be contained (half-open)")
	}
	if !sel.Contains(NewPosition(0, 5)) {
		t.Error("interior position should be contained")
	}
	if sel.Contains(NewPosition(0, 6)) {
		t.Error("end should not be contained (half-open)")
	}
}

func TestEmptySelectionContainsNothing(t *testing.T) {
	caret := NewCaretSelection(NewPosition(0, 3))
	if caret.Contains(NewPosition(0, 3)) {
		t.Error("empty selection should contain no positions")
	}
}

func TestSelectionOverlaps(t *testing.T) {
	a := NewSelection(NewPosition(0, 0), NewPosition(0, 5))
	b := NewSelection(NewPosition(0, 3), NewPosition(0, 8))
	c := NewSelection(NewPosition(0, 5), NewPosition(0, 9))

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Error("intersecting selections should overlap")
	}
	if a.Overlaps(c) {
		t.Error("adjacent selections should not overlap under half-open semantics")
	}
}

func TestSelectionTouches(t *testing.T) {
	a := NewSelection(NewPosition(0, 0), NewPosition(0, 5))
	b := NewSelection(NewPosition(0, 5), NewPosition(0, 9))
	c := NewSelection(NewPosition(0, 6), NewPosition(0, 9))

	if !a.Touches(b) {
		t.Error("adjacent selections should touch")
	}
	if a.Touches(c) {
		t.Error("disjoint selections should not touch")
	}
}

func TestSelectionMerge(t *testing.T) {
	a := NewSelection(NewPosition(0, 0), NewPosition(0, 5))
	b := NewSelection(NewPosition(0, 3), NewPosition(0, 8))

	merged, ok := a.Merge(b)
	if !ok {
		t.Fatal("overlapping selections should merge")
	}
	if !merged.Start().Equals(NewPosition(0, 0)) || !merged.End().Equals(NewPosition(0, 8)) {
		t.Errorf("merged range wrong: %s", merged)
	}
	if !merged.IsForward() {
		t.Error("merge should keep the receiver's direction")
	}
}

func TestSelectionMergeKeepsBackwardDirection(t *testing.T) {
	a := NewSelection(NewPosition(0, 5), NewPosition(0, 0))
	b := NewSelection(NewPosition(0, 4), NewPosition(0, 8))

	merged, ok := a.Merge(b)
	if !ok {
		t.Fatal("overlapping selections should merge")
	}
	if !merged.IsBackward() {
		t.Error("merge should keep the receiver's direction")
	}
	if !merged.Start().Equals(NewPosition(0, 0)) || !merged.End().Equals(NewPosition(0, 8)) {
		t.Errorf("merged range wrong: %s", merged)
	}
}

func TestSelectionMergeDisjoint(t *testing.T) {
	a := NewSelection(NewPosition(0, 0), NewPosition(0, 2))
	b := NewSelection(NewPosition(0, 5), NewPosition(0, 8))

	if _, ok := a.Merge(b); ok {
		t.Error("disjoint selections should not merge")
	}
}
