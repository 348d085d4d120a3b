package stats

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/inkstone/internal/editor/fold"
	"github.com/dshills/inkstone/internal/textutil"
)

// wordsPerMinute is the reading speed used for time estimates.
const wordsPerMinute = 250

// TextStats holds plain-text metrics for a piece of content.
type TextStats struct {
	// Words is the number of whitespace-separated word runs.
	Words int
	// Chars is the number of runes, whitespace included.
	Chars int
	// CharsNoSpaces is the number of runes excluding whitespace.
	CharsNoSpaces int
	// Graphemes is the number of user-perceived characters.
	Graphemes int
	// Lines is the number of lines; empty content counts as one line.
	Lines int
	// Paragraphs is the number of text blocks separated by blank lines.
	Paragraphs int
	// Sentences approximates sentence count by terminator runs (. ! ?).
	Sentences int
	// ReadingTime is the estimated reading time in whole minutes, at
	// least one.
	ReadingTime int
}

// ComputeText calculates plain-text statistics in a single pass.
func ComputeText(content string) TextStats {
	if content == "" {
		return TextStats{Lines: 1, ReadingTime: 1}
	}

	s := TextStats{Lines: strings.Count(content, "\n") + 1}

	inWord := false
	inParagraph := false
	newlineRun := 0
	lineHasContent := false
	prevTerminator := false

	for _, r := range content {
		s.Chars++

		if unicode.IsSpace(r) {
			inWord = false
			prevTerminator = false

			if r == '\n' {
				newlineRun++
				if lineHasContent && !inParagraph {
					inParagraph = true
					s.Paragraphs++
				}
				if newlineRun >= 2 {
					inParagraph = false
				}
				lineHasContent = false
			} else {
				newlineRun = 0
			}
			continue
		}

		s.CharsNoSpaces++
		newlineRun = 0
		lineHasContent = true

		if !inWord {
			inWord = true
			s.Words++
		}

		terminator := r == '.' || r == '!' || r == '?'
		if terminator && !prevTerminator {
			s.Sentences++
		}
		prevTerminator = terminator
	}

	if lineHasContent && !inParagraph {
		s.Paragraphs++
	}

	s.Graphemes = textutil.GraphemeCount(content)
	s.ReadingTime = readingMinutes(s.Words)
	return s
}

// String formats the core counts for a status line.
func (s TextStats) String() string {
	return fmt.Sprintf("%d words | %d chars | %d lines", s.Words, s.Chars, s.Lines)
}

// ReadingTimeLabel formats the reading time for display.
func (s TextStats) ReadingTimeLabel() string {
	if s.ReadingTime == 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", s.ReadingTime)
}

func readingMinutes(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// DocumentStats holds text metrics plus markdown element counts.
type DocumentStats struct {
	Text TextStats
	// HeadingsByLevel counts headings per level; index 0 is H1.
	HeadingsByLevel [6]int
	HeadingCount    int
	LinkCount       int
	ImageCount      int
	CodeBlockCount  int
	// TableRowCount counts lines that look like table rows, not whole
	// tables.
	TableRowCount   int
	BlockquoteCount int
	ListItemCount   int
}

// Compute calculates text statistics and markdown element counts.
func Compute(content string) DocumentStats {
	s := DocumentStats{Text: ComputeText(content)}
	s.parseMarkdown(content)
	return s
}

// parseMarkdown counts structural elements line by line. Lines inside
// fenced code blocks are skipped.
func (s *DocumentStats) parseMarkdown(content string) {
	inCodeBlock := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if inCodeBlock {
				inCodeBlock = false
			} else {
				inCodeBlock = true
				s.CodeBlockCount++
			}
			continue
		}
		if inCodeBlock {
			continue
		}

		if level, ok := fold.DetectHeadingLevel(trimmed); ok {
			s.HeadingsByLevel[level-1]++
			s.HeadingCount++
		}

		if strings.HasPrefix(trimmed, ">") {
			s.BlockquoteCount++
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") || isOrderedItem(trimmed) {
			s.ListItemCount++
		}

		s.LinkCount += countLinks(line)
		s.ImageCount += countImages(line)

		if strings.HasPrefix(trimmed, "|") {
			s.TableRowCount++
		}
	}
}

// isOrderedItem reports whether a trimmed line starts like "1. " or
// "42. ".
func isOrderedItem(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return false
	}
	return i+1 < len(line) && line[i+1] == ' '
}

// countLinks counts [text](url) occurrences, excluding image syntax.
func countLinks(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '[' {
			continue
		}
		if i > 0 && line[i-1] == '!' {
			continue
		}
		rest := line[i+1:]
		sep := strings.Index(rest, "](")
		if sep < 0 {
			continue
		}
		if strings.Contains(rest[sep+2:], ")") {
			count++
		}
	}
	return count
}

// countImages counts ![alt](url) occurrences.
func countImages(line string) int {
	count := 0
	start := 0
	for {
		pos := strings.Index(line[start:], "![")
		if pos < 0 {
			return count
		}
		rest := line[start+pos+2:]
		if sep := strings.Index(rest, "]("); sep >= 0 {
			if strings.Contains(rest[sep+2:], ")") {
				count++
			}
		}
		start += pos + 2
	}
}
