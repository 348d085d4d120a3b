package fold

import "strings"

// previewLimit caps heading preview text, in runes.
const previewLimit = 50

// DetectHeadingLevel returns the markdown heading level (1-6) of a line:
// after leading whitespace, one to six '#' characters followed by a
// space or end of line. More than six hashes, or a hash run glued to
// text, is not a heading.
func DetectHeadingLevel(line string) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "#") {
		return 0, false
	}

	level := 0
	for _, r := range trimmed {
		if r != '#' {
			break
		}
		level++
	}
	if level > 6 {
		return 0, false
	}

	rest := trimmed[level:]
	if rest == "" || strings.HasPrefix(rest, " ") {
		return level, true
	}
	return 0, false
}

// headingPreview extracts the heading text with hashes and surrounding
// whitespace stripped, truncated to the preview limit.
func headingPreview(line string) string {
	text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return text
}

// DetectMarkdownFolds scans content and returns a fresh State holding
// heading and fenced-code-block regions.
//
// A heading's region runs from its line to the line before the next
// heading of equal or higher level, or to the end of the document when
// none follows, with trailing blank lines trimmed. Regions that would
// hide nothing (a heading directly followed by another heading or end
// of document) are not created.
//
// Fences (``` or ~~~) toggle an open code block; the close fence ends a
// region spanning both fence lines. An unclosed fence produces no
// region.
func DetectMarkdownFolds(content string) *State {
	state := NewState()
	lines := strings.Split(content, "\n")

	type heading struct {
		line    int
		level   int
		preview string
	}
	var headings []heading

	for i, line := range lines {
		if level, ok := DetectHeadingLevel(line); ok {
			headings = append(headings, heading{line: i, level: level, preview: headingPreview(line)})
		}
	}

	for i, h := range headings {
		end := len(lines) - 1
		for _, next := range headings[i+1:] {
			if next.level <= h.level {
				end = next.line - 1
				break
			}
		}
		if end <= h.line {
			continue
		}

		for end > h.line && strings.TrimSpace(lines[end]) == "" {
			end--
		}
		if end > h.line {
			state.AddHeadingRegion(h.line, end, h.level, h.preview)
		}
	}

	inBlock := false
	blockStart := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "```") && !strings.HasPrefix(trimmed, "~~~") {
			continue
		}
		if inBlock {
			if i > blockStart {
				state.AddRegion(blockStart, i, KindCodeBlock)
			}
			inBlock = false
		} else {
			blockStart = i
			inBlock = true
		}
	}

	state.MarkClean()
	return state
}
