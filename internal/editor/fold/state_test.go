package fold

import "testing"

func TestAddRegionAssignsSequentialIDs(t *testing.T) {
	s := NewState()

	first := s.AddRegion(0, 2, KindHeading)
	second := s.AddRegion(4, 6, KindCodeBlock)

	if first == second {
		t.Fatalf("expected distinct ids, both were %d", first)
	}
	if s.RegionCount() != 2 {
		t.Errorf("RegionCount() = %d, want 2", s.RegionCount())
	}

	r, ok := s.Region(second)
	if !ok {
		t.Fatalf("region %d not found", second)
	}
	if r.StartLine != 4 || r.EndLine != 6 || r.Kind != KindCodeBlock {
		t.Errorf("got region (%d, %d, %v), want (4, 6, codeblock)", r.StartLine, r.EndLine, r.Kind)
	}
}

func TestAddHeadingRegion(t *testing.T) {
	s := NewState()
	id := s.AddHeadingRegion(3, 8, 2, "Section")

	r, ok := s.Region(id)
	if !ok {
		t.Fatal("heading region not found")
	}
	if r.Kind != KindHeading {
		t.Errorf("Kind = %v, want heading", r.Kind)
	}
	if r.Level != 2 {
		t.Errorf("Level = %d, want 2", r.Level)
	}
	if r.Preview != "Section" {
		t.Errorf("Preview = %q, want %q", r.Preview, "Section")
	}
}

func TestRegionAtLine(t *testing.T) {
	s := NewState()
	s.AddRegion(1, 4, KindHeading)

	r, ok := s.RegionAtLine(1)
	if !ok {
		t.Fatal("expected a region starting at line 1")
	}
	if r.EndLine != 4 {
		t.Errorf("EndLine = %d, want 4", r.EndLine)
	}

	if _, ok := s.RegionAtLine(2); ok {
		t.Error("interior line should not match a region start")
	}
	if _, ok := s.RegionAtLine(7); ok {
		t.Error("unrelated line should not match")
	}
}

func TestToggleAtLine(t *testing.T) {
	s := NewState()
	id := s.AddRegion(2, 5, KindHeading)

	if !s.ToggleAtLine(2) {
		t.Fatal("expected toggle to succeed on the fold start line")
	}
	r, _ := s.Region(id)
	if !r.Folded {
		t.Error("expected region folded after toggle")
	}

	if s.ToggleAtLine(3) {
		t.Error("toggle on an interior line should report false")
	}
	if !r.Folded {
		t.Error("failed toggle should not change fold state")
	}
}

func TestIsLineHidden(t *testing.T) {
	s := NewState()
	id := s.AddRegion(1, 3, KindHeading)

	for line := 0; line <= 4; line++ {
		if s.IsLineHidden(line) {
			t.Errorf("line %d hidden while region is unfolded", line)
		}
	}

	r, _ := s.Region(id)
	r.Folded = true

	if s.IsLineHidden(1) {
		t.Error("fold header line should stay visible")
	}
	if !s.IsLineHidden(2) || !s.IsLineHidden(3) {
		t.Error("interior lines should be hidden when folded")
	}
	if s.IsLineHidden(4) {
		t.Error("line past the region should stay visible")
	}
}

func TestFoldIndicatorsSorted(t *testing.T) {
	s := NewState()
	s.AddRegion(5, 9, KindCodeBlock)
	s.AddRegion(0, 3, KindHeading)
	s.AddRegion(2, 2, KindList)
	s.ToggleAtLine(0)

	indicators := s.FoldIndicators()
	if len(indicators) != 3 {
		t.Fatalf("got %d indicators, want 3", len(indicators))
	}

	wantLines := []int{0, 2, 5}
	for i, want := range wantLines {
		if indicators[i].Line != want {
			t.Errorf("indicator %d at line %d, want %d", i, indicators[i].Line, want)
		}
	}
	if !indicators[0].Folded {
		t.Error("indicator at line 0 should report folded")
	}
	if indicators[1].Folded || indicators[2].Folded {
		t.Error("unfolded regions should report unfolded indicators")
	}
}

func TestRegionsSortedByStartLine(t *testing.T) {
	s := NewState()
	s.AddRegion(8, 10, KindCodeBlock)
	s.AddRegion(0, 5, KindHeading)
	s.AddRegion(3, 4, KindList)

	regions := s.Regions()
	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(regions))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1].StartLine > regions[i].StartLine {
			t.Errorf("regions out of order: %d before %d", regions[i-1].StartLine, regions[i].StartLine)
		}
	}
}

func TestFoldAllUnfoldAll(t *testing.T) {
	s := NewState()
	s.AddRegion(0, 2, KindHeading)
	s.AddRegion(4, 6, KindCodeBlock)

	s.FoldAll()
	for _, r := range s.Regions() {
		if !r.Folded {
			t.Errorf("region at line %d not folded after FoldAll", r.StartLine)
		}
	}

	s.UnfoldAll()
	for _, r := range s.Regions() {
		if r.Folded {
			t.Errorf("region at line %d still folded after UnfoldAll", r.StartLine)
		}
	}
}

func TestFoldKind(t *testing.T) {
	s := NewState()
	headingID := s.AddRegion(0, 2, KindHeading)
	codeID := s.AddRegion(4, 6, KindCodeBlock)

	s.FoldKind(KindHeading)

	heading, _ := s.Region(headingID)
	code, _ := s.Region(codeID)
	if !heading.Folded {
		t.Error("heading region should be folded")
	}
	if code.Folded {
		t.Error("code block region should be untouched")
	}

	s.FoldAll()
	s.UnfoldKind(KindCodeBlock)
	if heading.Folded != true || code.Folded != false {
		t.Errorf("after UnfoldKind(codeblock): heading=%v code=%v, want true false", heading.Folded, code.Folded)
	}
}

func TestClearKeepsIDCounter(t *testing.T) {
	s := NewState()
	stale := s.AddRegion(0, 2, KindHeading)

	s.Clear()
	if s.RegionCount() != 0 {
		t.Fatalf("RegionCount() = %d after Clear, want 0", s.RegionCount())
	}

	fresh := s.AddRegion(0, 2, KindHeading)
	if fresh == stale {
		t.Errorf("id %d reused after Clear", fresh)
	}
	if _, ok := s.Region(stale); ok {
		t.Error("stale id should not resolve after Clear")
	}
}

func TestDirtyFlag(t *testing.T) {
	s := NewState()
	if s.IsDirty() {
		t.Error("new state should start clean")
	}

	s.MarkDirty()
	if !s.IsDirty() {
		t.Error("expected dirty after MarkDirty")
	}

	s.MarkClean()
	if s.IsDirty() {
		t.Error("expected clean after MarkClean")
	}
}
