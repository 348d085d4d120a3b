package fold

// Kind classifies a foldable region.
type Kind int

const (
	// KindHeading is a markdown heading section; Region.Level carries
	// the heading level 1-6.
	KindHeading Kind = iota
	// KindCodeBlock is a fenced code block including both fence lines.
	KindCodeBlock
	// KindList is an ordered or unordered list.
	KindList
	// KindBlockquote is a blockquote.
	KindBlockquote
	// KindIndentation is an indentation-based fold.
	KindIndentation
	// KindCustom is an explicitly marked region.
	KindCustom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindCodeBlock:
		return "codeblock"
	case KindList:
		return "list"
	case KindBlockquote:
		return "blockquote"
	case KindIndentation:
		return "indentation"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Region is a foldable line range. StartLine and EndLine are 0-indexed
// and inclusive; the start line remains visible when folded.
type Region struct {
	ID        uint64
	StartLine int
	EndLine   int
	Kind      Kind
	Level     int
	Preview   string
	Folded    bool
}

// LineCount returns the number of lines spanned, including the start
// line.
func (r *Region) LineCount() int {
	if r.EndLine < r.StartLine {
		return 1
	}
	return r.EndLine - r.StartLine + 1
}

// ContainsLine reports whether folding this region hides the given line.
// The start line is excluded: it renders as the fold header.
func (r *Region) ContainsLine(line int) bool {
	return line > r.StartLine && line <= r.EndLine
}

// Toggle flips the folded state.
func (r *Region) Toggle() {
	r.Folded = !r.Folded
}
