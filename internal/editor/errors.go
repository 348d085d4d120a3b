package editor

import "errors"

// Errors returned by document operations.
var (
	// ErrPositionOutOfRange indicates a position outside the document:
	// line >= line count, or column past the end of the line.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrOffsetOutOfRange indicates a rune offset outside the valid range
	// [0, Len()].
	ErrOffsetOutOfRange = errors.New("offset out of range")
)
