package cursor

import "fmt"

// Position identifies a location in a document by line and column.
// Both are 0-indexed. Column counts characters (Unicode code points)
// within the line, never bytes, so a multi-byte character occupies a
// single column.
type Position struct {
	Line   int
	Column int
}

// NewPosition creates a position at the given line and column.
// Negative values clamp to zero.
func NewPosition(line, column int) Position {
	if line < 0 {
		line = 0
	}
	if column < 0 {
		column = 0
	}
	return Position{Line: line, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Positions order by line first, then column.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Equals returns true if both positions are identical.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

// IsZero returns true if this is the zero position (0:0), the start of
// the document.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Min returns the earlier of p and other.
func (p Position) Min(other Position) Position {
	if p.Before(other) {
		return p
	}
	return other
}

// Max returns the later of p and other.
func (p Position) Max(other Position) Position {
	if p.Before(other) {
		return other
	}
	return p
}
