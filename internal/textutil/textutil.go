package textutil

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// IsWordRune reports whether r is part of a word: a letter, a digit, or an
// underscore. Search and word-motion operations share this definition.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordAt returns the rune-column bounds [start, end) of the word containing
// or immediately preceding the given column of line. It reports false when
// no word touches the column.
func WordAt(line string, col int) (start, end int, ok bool) {
	runes := []rune(line)
	if col < 0 || col > len(runes) {
		return 0, 0, false
	}

	start = col
	for start > 0 && IsWordRune(runes[start-1]) {
		start--
	}
	end = col
	for end < len(runes) && IsWordRune(runes[end]) {
		end++
	}

	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// LeadingIndent returns the run of spaces and tabs at the start of line.
func LeadingIndent(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

// ByteIndex returns the byte index of the rune at the given rune offset,
// or len(s) when the offset is at or past the end.
func ByteIndex(s string, runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == runeOffset {
			return i
		}
		count++
	}
	return len(s)
}

// RuneIndex returns the rune offset of the byte at the given index. An
// index at or past the end maps to the rune count.
func RuneIndex(s string, byteIndex int) int {
	if byteIndex <= 0 {
		return 0
	}
	if byteIndex >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteIndex])
}

// GraphemeCount returns the number of grapheme clusters in s. A combining
// sequence or a multi-codepoint emoji counts as one.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// DisplayWidth returns the width of s in terminal cells. East Asian wide
// characters and most emoji occupy two cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth shortens s to at most width display cells, appending tail
// when truncation occurs.
func TruncateWidth(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}
