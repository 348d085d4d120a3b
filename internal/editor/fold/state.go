package fold

import "sort"

// Indicator marks a line where a fold begins and its current state, for
// gutter rendering.
type Indicator struct {
	Line   int
	Folded bool
}

// State is the set of fold regions for one document snapshot, keyed by
// region id. It is a derived, disposable cache: recompute it whenever
// the content changes meaningfully.
type State struct {
	regions map[uint64]*Region
	nextID  uint64
	dirty   bool
}

// NewState creates an empty fold state.
func NewState() *State {
	return &State{regions: make(map[uint64]*Region)}
}

// AddRegion adds a fold region and returns its id.
func (s *State) AddRegion(startLine, endLine int, kind Kind) uint64 {
	return s.add(&Region{StartLine: startLine, EndLine: endLine, Kind: kind})
}

// AddHeadingRegion adds a heading fold with its level and preview text.
func (s *State) AddHeadingRegion(startLine, endLine, level int, preview string) uint64 {
	return s.add(&Region{
		StartLine: startLine,
		EndLine:   endLine,
		Kind:      KindHeading,
		Level:     level,
		Preview:   preview,
	})
}

func (s *State) add(r *Region) uint64 {
	r.ID = s.nextID
	s.nextID++
	s.regions[r.ID] = r
	return r.ID
}

// Region returns the region with the given id.
func (s *State) Region(id uint64) (*Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// RegionAtLine returns the region whose fold header is the given line.
// At most one fold begins per line.
func (s *State) RegionAtLine(line int) (*Region, bool) {
	for _, r := range s.regions {
		if r.StartLine == line {
			return r, true
		}
	}
	return nil, false
}

// ToggleAtLine flips the fold starting at the given line. It reports
// false when no fold starts there.
func (s *State) ToggleAtLine(line int) bool {
	r, ok := s.RegionAtLine(line)
	if !ok {
		return false
	}
	r.Toggle()
	return true
}

// IsLineHidden reports whether any folded region hides the given line.
func (s *State) IsLineHidden(line int) bool {
	for _, r := range s.regions {
		if r.Folded && r.ContainsLine(line) {
			return true
		}
	}
	return false
}

// FoldIndicators returns the fold start lines and their states, sorted
// by line.
func (s *State) FoldIndicators() []Indicator {
	indicators := make([]Indicator, 0, len(s.regions))
	for _, r := range s.regions {
		indicators = append(indicators, Indicator{Line: r.StartLine, Folded: r.Folded})
	}
	sort.Slice(indicators, func(i, j int) bool {
		return indicators[i].Line < indicators[j].Line
	})
	return indicators
}

// Regions returns all regions sorted by start line.
func (s *State) Regions() []*Region {
	regions := make([]*Region, 0, len(s.regions))
	for _, r := range s.regions {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].StartLine < regions[j].StartLine
	})
	return regions
}

// FoldAll folds every region.
func (s *State) FoldAll() {
	for _, r := range s.regions {
		r.Folded = true
	}
}

// UnfoldAll unfolds every region.
func (s *State) UnfoldAll() {
	for _, r := range s.regions {
		r.Folded = false
	}
}

// FoldKind folds every region of the given kind.
func (s *State) FoldKind(kind Kind) {
	for _, r := range s.regions {
		if r.Kind == kind {
			r.Folded = true
		}
	}
}

// UnfoldKind unfolds every region of the given kind.
func (s *State) UnfoldKind(kind Kind) {
	for _, r := range s.regions {
		if r.Kind == kind {
			r.Folded = false
		}
	}
}

// Clear removes all regions. The id generator keeps counting so stale
// ids never resolve to new regions.
func (s *State) Clear() {
	s.regions = make(map[uint64]*Region)
}

// RegionCount returns the number of regions.
func (s *State) RegionCount() int {
	return len(s.regions)
}

// MarkDirty flags that detection must re-run after a content change.
func (s *State) MarkDirty() {
	s.dirty = true
}

// MarkClean clears the dirty flag.
func (s *State) MarkClean() {
	s.dirty = false
}

// IsDirty reports whether detection should re-run.
func (s *State) IsDirty() bool {
	return s.dirty
}
