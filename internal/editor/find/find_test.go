package find

import "testing"

func TestSearchLiteral(t *testing.T) {
	s := NewState()
	s.Query = "hello"

	s.Search("hello world hello")

	if s.MatchCount() != 2 {
		t.Fatalf("match count = %d, want 2", s.MatchCount())
	}
	want := []Match{{0, 5}, {12, 17}}
	for i, m := range s.Matches() {
		if m != want[i] {
			t.Errorf("match %d = %v, want %v", i, m, want[i])
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	s := NewState()

	s.Search("anything")

	if s.HasMatches() {
		t.Error("empty query should find nothing")
	}
}

func TestSearchClearsPreviousMatches(t *testing.T) {
	s := NewState()
	s.Query = "a"
	s.Search("aaa")
	if s.MatchCount() != 3 {
		t.Fatalf("setup: match count = %d", s.MatchCount())
	}

	s.Query = "zzz"
	s.Search("aaa")

	if s.HasMatches() {
		t.Error("new search should replace the old match list")
	}
	if s.CurrentIndex() != 0 {
		t.Error("new search should reset the current index")
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := NewState()
	s.Query = "Hello"

	s.Search("hello HELLO Hello")

	if s.MatchCount() != 3 {
		t.Errorf("match count = %d, want 3", s.MatchCount())
	}
}

func TestSearchCaseSensitive(t *testing.T) {
	s := NewState()
	s.Query = "Hello"
	s.Options.CaseSensitive = true

	s.Search("hello HELLO Hello")

	if s.MatchCount() != 1 {
		t.Fatalf("match count = %d, want 1", s.MatchCount())
	}
	if m := s.Matches()[0]; m != (Match{12, 17}) {
		t.Errorf("match = %v, want {12 17}", m)
	}
}

func TestSearchWholeWord(t *testing.T) {
	s := NewState()
	s.Query = "test"
	s.Options.WholeWord = true

	s.Search("test testing tested test")

	if s.MatchCount() != 2 {
		t.Fatalf("match count = %d, want 2", s.MatchCount())
	}
	want := []Match{{0, 4}, {20, 24}}
	for i, m := range s.Matches() {
		if m != want[i] {
			t.Errorf("match %d = %v, want %v", i, m, want[i])
		}
	}
}

func TestSearchWholeWordAdjacentCandidates(t *testing.T) {
	s := NewState()
	s.Query = "test"
	s.Options.WholeWord = true

	s.Search("testtest")

	if s.MatchCount() != 0 {
		t.Errorf("match count = %d, want 0", s.MatchCount())
	}
}

func TestSearchWholeWordUnderscore(t *testing.T) {
	s := NewState()
	s.Query = "name"
	s.Options.WholeWord = true

	s.Search("name _name name_ name")

	if s.MatchCount() != 2 {
		t.Errorf("match count = %d, want 2 (underscore joins words)", s.MatchCount())
	}
}

func TestSearchMultibyteOffsets(t *testing.T) {
	s := NewState()
	s.Query = "wörld"

	s.Search("héllo wörld")

	if s.MatchCount() != 1 {
		t.Fatalf("match count = %d, want 1", s.MatchCount())
	}
	if m := s.Matches()[0]; m != (Match{6, 11}) {
		t.Errorf("match = %v, want rune offsets {6 11}", m)
	}
}

func TestSearchWholeWordMultibyteNeighbor(t *testing.T) {
	s := NewState()
	s.Query = "llo"
	s.Options.WholeWord = true

	s.Search("héllo")

	if s.MatchCount() != 0 {
		t.Errorf("match count = %d, want 0 (accented letter is a word rune)", s.MatchCount())
	}
}

func TestSearchRegex(t *testing.T) {
	s := NewState()
	s.Query = "h.llo"
	s.Options.UseRegex = true
	s.Options.CaseSensitive = true

	s.Search("hello hallo hillo")

	if s.MatchCount() != 3 {
		t.Errorf("match count = %d, want 3", s.MatchCount())
	}
}

func TestSearchRegexCaseInsensitive(t *testing.T) {
	s := NewState()
	s.Query = "go+gle"
	s.Options.UseRegex = true

	s.Search("Google GOOOGLE")

	if s.MatchCount() != 2 {
		t.Errorf("match count = %d, want 2", s.MatchCount())
	}
}

func TestSearchRegexWholeWord(t *testing.T) {
	s := NewState()
	s.Query = "test"
	s.Options.UseRegex = true
	s.Options.WholeWord = true

	s.Search("test testing tested")

	if s.MatchCount() != 1 {
		t.Errorf("match count = %d, want 1", s.MatchCount())
	}
}

func TestSearchRegexInvalidPattern(t *testing.T) {
	s := NewState()
	s.Query = "[unclosed"
	s.Options.UseRegex = true

	s.Search("anything [unclosed here")

	if s.HasMatches() {
		t.Error("invalid pattern should yield zero matches, not an error")
	}
}

func TestSearchRegexMultibyteOffsets(t *testing.T) {
	s := NewState()
	s.Query = "w.rld"
	s.Options.UseRegex = true

	s.Search("héllo wörld")

	if s.MatchCount() != 1 {
		t.Fatalf("match count = %d, want 1", s.MatchCount())
	}
	if m := s.Matches()[0]; m != (Match{6, 11}) {
		t.Errorf("match = %v, want rune offsets {6 11}", m)
	}
}

func TestNextPrevCyclic(t *testing.T) {
	s := NewState()
	s.Query = "a"
	s.Search("a b a b a")

	if s.MatchCount() != 3 {
		t.Fatalf("match count = %d, want 3", s.MatchCount())
	}

	m, ok := s.Next()
	if !ok || m != (Match{4, 5}) {
		t.Errorf("first next = %v, %v", m, ok)
	}
	s.Next()
	m, ok = s.Next()
	if !ok || m != (Match{0, 1}) {
		t.Errorf("next should wrap to the first match, got %v, %v", m, ok)
	}

	m, ok = s.Prev()
	if !ok || m != (Match{8, 9}) {
		t.Errorf("prev should wrap to the last match, got %v, %v", m, ok)
	}
}

func TestNextPrevNoMatches(t *testing.T) {
	s := NewState()

	if _, ok := s.Next(); ok {
		t.Error("next with no matches should report false")
	}
	if _, ok := s.Prev(); ok {
		t.Error("prev with no matches should report false")
	}
}

func TestCurrent(t *testing.T) {
	s := NewState()
	s.Query = "x"
	s.Search("x y x")

	m, ok := s.Current()
	if !ok || m != (Match{0, 1}) {
		t.Errorf("current = %v, %v, want first match", m, ok)
	}

	s.Clear()
	if _, ok := s.Current(); ok {
		t.Error("current after clear should report false")
	}
}

func TestReplaceCurrent(t *testing.T) {
	s := NewState()
	s.Query = "old"
	s.Replacement = "hi"
	s.Search("old and old")
	s.Next()

	got, ok := s.ReplaceCurrent("old and old")
	if !ok {
		t.Fatal("expected a replacement")
	}
	if got != "old and hi" {
		t.Errorf("got %q, want %q", got, "old and hi")
	}
}

func TestReplaceCurrentNoMatch(t *testing.T) {
	s := NewState()

	if _, ok := s.ReplaceCurrent("text"); ok {
		t.Error("replace with no matches should report false")
	}
}

func TestReplaceAll(t *testing.T) {
	s := NewState()
	s.Query = "old"
	s.Replacement = "hi"
	s.Search("old and old")

	if got := s.ReplaceAll("old and old"); got != "hi and hi" {
		t.Errorf("got %q, want %q", got, "hi and hi")
	}
}

func TestReplaceAllNoMatches(t *testing.T) {
	s := NewState()

	if got := s.ReplaceAll("unchanged"); got != "unchanged" {
		t.Errorf("got %q, want input back", got)
	}
}

func TestReplaceAllLongerReplacement(t *testing.T) {
	s := NewState()
	s.Query = "a"
	s.Replacement = "AAA"
	s.Search("a-a-a")

	if got := s.ReplaceAll("a-a-a"); got != "AAA-AAA-AAA" {
		t.Errorf("got %q", got)
	}
}

func TestReplaceAllMultibyte(t *testing.T) {
	s := NewState()
	s.Query = "世"
	s.Replacement = "World"
	s.Search("héllo 世 and 世")

	if got := s.ReplaceAll("héllo 世 and 世"); got != "héllo World and World" {
		t.Errorf("got %q", got)
	}
}

func TestVisibilityToggles(t *testing.T) {
	s := NewState()

	s.Show()
	if !s.IsVisible() || s.IsReplaceMode() {
		t.Error("show should open in search-only mode")
	}

	s.ShowReplace()
	if !s.IsVisible() || !s.IsReplaceMode() {
		t.Error("show replace should open the replace row")
	}

	s.Hide()
	if s.IsVisible() {
		t.Error("hide should close the panel")
	}
}

func TestHideKeepsMatches(t *testing.T) {
	s := NewState()
	s.Query = "a"
	s.Search("a a")

	s.Hide()

	if s.MatchCount() != 2 {
		t.Error("hide must not touch the match list")
	}
}

func TestClearKeepsReplacementAndOptions(t *testing.T) {
	s := NewState()
	s.Query = "a"
	s.Replacement = "b"
	s.Options.WholeWord = true
	s.Search("a")

	s.Clear()

	if s.Query != "" || s.HasMatches() {
		t.Error("clear should drop query and matches")
	}
	if s.Replacement != "b" || !s.Options.WholeWord {
		t.Error("clear should keep replacement and options")
	}
}
