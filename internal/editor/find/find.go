package find

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkstone/internal/textutil"
)

// Options configures how Search matches the query.
type Options struct {
	// CaseSensitive distinguishes letter case. Off by default.
	CaseSensitive bool

	// WholeWord accepts a match only when the characters adjacent to it
	// are not word characters.
	WholeWord bool

	// UseRegex treats the query as a regular expression.
	UseRegex bool

	// WrapAround is carried for hosts that display boundary behavior;
	// Next and Prev always cycle regardless.
	WrapAround bool
}

// Match is a half-open rune-offset range [Start, End) in the searched
// text.
type Match struct {
	Start int
	End   int
}

// Len returns the match length in runes.
func (m Match) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match covers no text.
func (m Match) IsEmpty() bool {
	return m.Start == m.End
}

// State holds a query, its options, and the matches found by the most
// recent Search. Query, Replacement, and Options are set directly by the
// host; the match list and current index are derived.
type State struct {
	Query       string
	Replacement string
	Options     Options

	matches     []Match
	current     int
	visible     bool
	replaceMode bool
}

// NewState creates an empty find state.
func NewState() *State {
	return &State{}
}

// Search finds all matches of the query in text, replacing any previous
// match list and resetting the current index. An empty query or an
// invalid regex pattern yields zero matches.
func (s *State) Search(text string) {
	s.matches = s.matches[:0]
	s.current = 0

	if s.Query == "" {
		return
	}
	if s.Options.UseRegex {
		s.searchRegex(text)
	} else {
		s.searchLiteral(text)
	}
}

// searchLiteral scans left to right for non-overlapping occurrences.
// Whole-word rejections advance the scan by a single rune so that
// adjacent overlapping candidates are still tried.
func (s *State) searchLiteral(text string) {
	haystack := text
	needle := s.Query
	if !s.Options.CaseSensitive {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(needle)
	}

	runes := []rune(haystack)
	queryLen := utf8.RuneCountInString(needle)

	startByte := 0
	for {
		idx := strings.Index(haystack[startByte:], needle)
		if idx < 0 {
			return
		}
		matchByte := startByte + idx
		matchStart := textutil.RuneIndex(haystack, matchByte)
		matchEnd := matchStart + queryLen

		if s.Options.WholeWord {
			startBoundary := matchStart == 0 || !textutil.IsWordRune(runes[matchStart-1])
			endBoundary := matchEnd >= len(runes) || !textutil.IsWordRune(runes[matchEnd])
			if !startBoundary || !endBoundary {
				_, size := utf8.DecodeRuneInString(haystack[matchByte:])
				startByte = matchByte + size
				continue
			}
		}

		s.matches = append(s.matches, Match{Start: matchStart, End: matchEnd})
		startByte = matchByte + len(needle)
	}
}

// searchRegex compiles the query with the configured flags and collects
// every match. Compile failures are silent: a half-typed pattern is
// routine while searching.
func (s *State) searchRegex(text string) {
	pattern := s.Query
	if !s.Options.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	if s.Options.WholeWord {
		pattern = `\b` + pattern + `\b`
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return
	}
	for _, loc := range re.FindAllStringIndex(text, -1) {
		s.matches = append(s.matches, Match{
			Start: textutil.RuneIndex(text, loc[0]),
			End:   textutil.RuneIndex(text, loc[1]),
		})
	}
}

// Next advances to the next match, cycling past the end. It reports
// false when there are no matches.
func (s *State) Next() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Prev retreats to the previous match, cycling past the start. It
// reports false when there are no matches.
func (s *State) Prev() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	if s.current == 0 {
		s.current = len(s.matches) - 1
	} else {
		s.current--
	}
	return s.matches[s.current], true
}

// Current returns the currently selected match.
func (s *State) Current() (Match, bool) {
	if s.current >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// CurrentIndex returns the index of the current match.
func (s *State) CurrentIndex() int {
	return s.current
}

// Matches returns the match list in ascending order. The slice is owned
// by the state and valid until the next Search.
func (s *State) Matches() []Match {
	return s.matches
}

// MatchCount returns the number of matches.
func (s *State) MatchCount() int {
	return len(s.matches)
}

// HasMatches reports whether the last search found anything.
func (s *State) HasMatches() bool {
	return len(s.matches) > 0
}

// ReplaceCurrent splices the replacement over the current match and
// returns the new text. It reports false when there is no current match.
// The input text must be the same text the matches were computed from.
func (s *State) ReplaceCurrent(text string) (string, bool) {
	m, ok := s.Current()
	if !ok {
		return "", false
	}
	bs := textutil.ByteIndex(text, m.Start)
	be := textutil.ByteIndex(text, m.End)
	return text[:bs] + s.Replacement + text[be:], true
}

// ReplaceAll splices the replacement over every match in one left-to-
// right pass and returns the new text. Matches were computed against the
// input text, so each splice offset is taken from the original.
func (s *State) ReplaceAll(text string) string {
	if len(s.matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	lastEnd := 0
	for _, m := range s.matches {
		b.WriteString(text[textutil.ByteIndex(text, lastEnd):textutil.ByteIndex(text, m.Start)])
		b.WriteString(s.Replacement)
		lastEnd = m.End
	}
	b.WriteString(text[textutil.ByteIndex(text, lastEnd):])
	return b.String()
}

// Show makes the find panel visible in search-only mode.
func (s *State) Show() {
	s.visible = true
	s.replaceMode = false
}

// ShowReplace makes the find panel visible with the replace row.
func (s *State) ShowReplace() {
	s.visible = true
	s.replaceMode = true
}

// Hide hides the find panel. The match list is unaffected.
func (s *State) Hide() {
	s.visible = false
}

// IsVisible reports whether the find panel is shown.
func (s *State) IsVisible() bool {
	return s.visible
}

// IsReplaceMode reports whether the replace row is shown.
func (s *State) IsReplaceMode() bool {
	return s.replaceMode
}

// Clear resets the query and the match list, keeping the replacement and
// options.
func (s *State) Clear() {
	s.Query = ""
	s.matches = s.matches[:0]
	s.current = 0
}
