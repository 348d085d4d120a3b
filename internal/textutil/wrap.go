package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WrapLine greedily wraps a single line (no newlines) to the given display
// width. Words longer than the width are broken at grapheme boundaries.
// A width <= 0 disables wrapping.
func WrapLine(line string, width int) []string {
	if width <= 0 || DisplayWidth(line) <= width {
		return []string{line}
	}

	var wrapped []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		wrapped = append(wrapped, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Split(line, " ") {
		wordWidth := DisplayWidth(word)

		if currentWidth > 0 && currentWidth+1+wordWidth > width {
			flush()
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}

		if wordWidth <= width {
			current.WriteString(word)
			currentWidth += wordWidth
			continue
		}

		// Break an overlong word at grapheme boundaries.
		state := -1
		rest := word
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.StepString(rest, state)
			clusterWidth := runewidth.StringWidth(cluster)
			if currentWidth > 0 && currentWidth+clusterWidth > width {
				flush()
			}
			current.WriteString(cluster)
			currentWidth += clusterWidth
		}
	}
	flush()

	return wrapped
}

// WrapText wraps every line of text to the given display width, preserving
// existing line breaks.
func WrapText(text string, width int) []string {
	var wrapped []string
	for _, line := range strings.Split(text, "\n") {
		wrapped = append(wrapped, WrapLine(line, width)...)
	}
	return wrapped
}
