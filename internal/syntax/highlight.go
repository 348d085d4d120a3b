package syntax

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/inkstone/internal/textutil"
)

// SpanKind classifies a styled run of text.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanKeyword
	SpanString
	SpanNumber
	SpanComment
	SpanHeading
	SpanBold
	SpanItalic
	SpanStrike
	SpanCode
	SpanCodeBlock
	SpanQuote
	SpanList
	SpanLink
)

// String returns the kind name.
func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanKeyword:
		return "keyword"
	case SpanString:
		return "string"
	case SpanNumber:
		return "number"
	case SpanComment:
		return "comment"
	case SpanHeading:
		return "heading"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanStrike:
		return "strike"
	case SpanCode:
		return "code"
	case SpanCodeBlock:
		return "codeblock"
	case SpanQuote:
		return "quote"
	case SpanList:
		return "list"
	case SpanLink:
		return "link"
	default:
		return "unknown"
	}
}

// Span is a styled run within one line. Start and End are rune columns,
// end exclusive. Unstyled text carries no span.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}

// LineState carries lexer state across lines for multi-line constructs.
type LineState int

const (
	StateNormal LineState = iota
	StateCodeBlock
)

// Highlighter styles single lines of content.
type Highlighter interface {
	// HighlightLine returns the styled spans of a line and the state to
	// pass to the next line.
	HighlightLine(line string, prev LineState) ([]Span, LineState)

	// Language returns the language this highlighter styles.
	Language() string

	// Extensions returns the file extensions handled, with leading dot.
	Extensions() []string
}

// PlainHighlighter styles nothing. It is the fallback for languages
// without a registered highlighter.
type PlainHighlighter struct{}

func (PlainHighlighter) HighlightLine(_ string, prev LineState) ([]Span, LineState) {
	return nil, prev
}

func (PlainHighlighter) Language() string { return LangPlain }

func (PlainHighlighter) Extensions() []string { return nil }

// rule pairs a pattern with the kind assigned to its matches.
type rule struct {
	pattern *regexp.Regexp
	kind    SpanKind
}

// RuleHighlighter styles lines by matching an ordered list of regex
// rules, then scanning the remainder for keywords. Earlier rules claim
// their matched bytes; later rules and keywords never overlap them.
type RuleHighlighter struct {
	language   string
	extensions []string
	rules      []rule
	keywords   map[string]SpanKind
}

// NewRuleHighlighter creates an empty rule highlighter for a language.
func NewRuleHighlighter(language string, extensions ...string) *RuleHighlighter {
	return &RuleHighlighter{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]SpanKind),
	}
}

// AddRule appends a regex rule. The pattern must compile.
func (h *RuleHighlighter) AddRule(pattern string, kind SpanKind) *RuleHighlighter {
	h.rules = append(h.rules, rule{pattern: regexp.MustCompile(pattern), kind: kind})
	return h
}

// AddKeywords registers words styled with the given kind.
func (h *RuleHighlighter) AddKeywords(kind SpanKind, words ...string) *RuleHighlighter {
	for _, w := range words {
		h.keywords[w] = kind
	}
	return h
}

func (h *RuleHighlighter) Language() string { return h.language }

func (h *RuleHighlighter) Extensions() []string { return h.extensions }

// HighlightLine applies the rules in order, then keyword matching, and
// returns spans sorted by start column. The state passes through
// unchanged; rule highlighting is line-local.
func (h *RuleHighlighter) HighlightLine(line string, prev LineState) ([]Span, LineState) {
	if line == "" {
		return nil, prev
	}

	var spans []Span
	covered := make([]bool, len(line))

	for _, r := range h.rules {
		for _, m := range r.pattern.FindAllStringIndex(line, -1) {
			start, end := m[0], m[1]
			if end <= start || isCovered(covered, start, end) {
				continue
			}
			markCovered(covered, start, end)
			spans = append(spans, Span{
				Start: textutil.RuneIndex(line, start),
				End:   textutil.RuneIndex(line, end),
				Kind:  r.kind,
			})
		}
	}

	spans = append(spans, h.keywordSpans(line, covered)...)

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, prev
}

// keywordSpans scans uncovered identifiers and styles registered
// keywords. Plain identifiers carry no span.
func (h *RuleHighlighter) keywordSpans(line string, covered []bool) []Span {
	if len(h.keywords) == 0 {
		return nil
	}

	var spans []Span
	i := 0
	for i < len(line) {
		if covered[i] {
			i++
			continue
		}
		r := rune(line[i])
		if !unicode.IsLetter(r) && r != '_' {
			i++
			continue
		}

		start := i
		for i < len(line) {
			r = rune(line[i])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i++
		}
		if isCovered(covered, start, i) {
			continue
		}
		if kind, ok := h.keywords[line[start:i]]; ok {
			markCovered(covered, start, i)
			spans = append(spans, Span{
				Start: textutil.RuneIndex(line, start),
				End:   textutil.RuneIndex(line, i),
				Kind:  kind,
			})
		}
	}
	return spans
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}

// markdownHighlighter wraps the rule engine with fence tracking so
// lines inside ``` blocks style as code instead of markdown.
type markdownHighlighter struct {
	rules *RuleHighlighter
}

// NewMarkdownHighlighter creates the markdown highlighter.
func NewMarkdownHighlighter() Highlighter {
	r := NewRuleHighlighter(LangMarkdown, ".md", ".markdown")
	r.AddRule(`^\s*#{1,6}\s+.*$`, SpanHeading)
	r.AddRule(`\*\*[^*]+\*\*`, SpanBold)
	r.AddRule(`__[^_]+__`, SpanBold)
	r.AddRule(`\*[^*]+\*`, SpanItalic)
	r.AddRule(`_[^_]+_`, SpanItalic)
	r.AddRule(`~~[^~]+~~`, SpanStrike)
	r.AddRule("`[^`]+`", SpanCode)
	r.AddRule(`^>\s+.*$`, SpanQuote)
	r.AddRule(`^\s*[-*+]\s+`, SpanList)
	r.AddRule(`^\s*\d+\.\s+`, SpanList)
	r.AddRule(`\[[^\]]+\]\([^)]+\)`, SpanLink)
	return &markdownHighlighter{rules: r}
}

func (h *markdownHighlighter) Language() string { return h.rules.Language() }

func (h *markdownHighlighter) Extensions() []string { return h.rules.Extensions() }

func (h *markdownHighlighter) HighlightLine(line string, prev LineState) ([]Span, LineState) {
	trimmed := strings.TrimSpace(line)
	fence := strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")

	if prev == StateCodeBlock {
		if fence {
			return wholeLineSpan(line, SpanCodeBlock), StateNormal
		}
		return wholeLineSpan(line, SpanCodeBlock), StateCodeBlock
	}
	if fence {
		return wholeLineSpan(line, SpanCodeBlock), StateCodeBlock
	}
	return h.rules.HighlightLine(line, StateNormal)
}

func wholeLineSpan(line string, kind SpanKind) []Span {
	if line == "" {
		return nil
	}
	return []Span{{Start: 0, End: textutil.RuneIndex(line, len(line)), Kind: kind}}
}

// NewGoHighlighter creates a highlighter for Go source.
func NewGoHighlighter() Highlighter {
	h := NewRuleHighlighter(LangGo, ".go")
	h.AddRule(`//.*$`, SpanComment)
	h.AddRule(`/\*.*?\*/`, SpanComment)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, SpanString)
	h.AddRule("`[^`]*`", SpanString)
	h.AddRule(`'(?:[^'\\]|\\.)'`, SpanString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, SpanNumber)
	h.AddRule(`\b0[bB][01_]+\b`, SpanNumber)
	h.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, SpanNumber)
	h.AddKeywords(SpanKeyword,
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var")
	h.AddKeywords(SpanKeyword, "true", "false", "nil", "iota")
	return h
}

// Registry maps languages and file extensions to highlighters.
type Registry struct {
	mu          sync.RWMutex
	byLanguage  map[string]Highlighter
	byExtension map[string]Highlighter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
	}
}

// Register adds a highlighter, indexed by language and extensions.
func (r *Registry) Register(h Highlighter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLanguage[h.Language()] = h
	for _, ext := range h.Extensions() {
		r.byExtension[ext] = h
	}
}

// ForLanguage returns the highlighter for a language name.
func (r *Registry) ForLanguage(language string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byLanguage[language]
	return h, ok
}

// ForExtension returns the highlighter for a file extension, with or
// without the leading dot.
func (r *Registry) ForExtension(ext string) (Highlighter, bool) {
	if ext == "" {
		return nil, false
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byExtension[ext]
	return h, ok
}

// DefaultRegistry returns a registry with the built-in highlighters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewMarkdownHighlighter())
	r.Register(NewGoHighlighter())
	return r
}
