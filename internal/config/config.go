package config

import "fmt"

// Default configuration values.
const (
	DefaultTabSize      = 4
	DefaultFontSize     = 14.0
	DefaultLineHeight   = 1.5
	DefaultMaxLineWidth = 0

	maxTabSize = 16
)

// Config is the root of the configuration file.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
}

// EditorConfig holds editing and display settings.
type EditorConfig struct {
	// TabSize is the tab width in columns.
	TabSize int `toml:"tab_size" yaml:"tab_size"`
	// InsertSpaces replaces tab insertion with spaces up to the next
	// tab stop.
	InsertSpaces bool `toml:"insert_spaces" yaml:"insert_spaces"`
	// WordWrap enables soft wrapping in views.
	WordWrap bool `toml:"word_wrap" yaml:"word_wrap"`
	// ShowLineNumbers enables the line number gutter.
	ShowLineNumbers bool `toml:"show_line_numbers" yaml:"show_line_numbers"`
	// HighlightCurrentLine highlights the cursor's line.
	HighlightCurrentLine bool `toml:"highlight_current_line" yaml:"highlight_current_line"`
	// ShowWhitespace renders whitespace characters visibly.
	ShowWhitespace bool `toml:"show_whitespace" yaml:"show_whitespace"`
	// MatchBrackets enables bracket-pair highlighting.
	MatchBrackets bool `toml:"match_brackets" yaml:"match_brackets"`
	// AutoIndent copies the previous line's leading whitespace on
	// newline insertion.
	AutoIndent bool `toml:"auto_indent" yaml:"auto_indent"`
	// AutoCloseBrackets inserts closing brackets automatically.
	AutoCloseBrackets bool `toml:"auto_close_brackets" yaml:"auto_close_brackets"`
	// FontSize is the font size in points.
	FontSize float64 `toml:"font_size" yaml:"font_size"`
	// LineHeight is the line height multiplier.
	LineHeight float64 `toml:"line_height" yaml:"line_height"`
	// MaxLineWidth caps soft-wrap width in columns; zero means the
	// full view width.
	MaxLineWidth int `toml:"max_line_width" yaml:"max_line_width"`
	// ReadOnly opens documents read-only.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:              DefaultTabSize,
			InsertSpaces:         true,
			WordWrap:             true,
			ShowLineNumbers:      true,
			HighlightCurrentLine: true,
			ShowWhitespace:       false,
			MatchBrackets:        true,
			AutoIndent:           true,
			AutoCloseBrackets:    true,
			FontSize:             DefaultFontSize,
			LineHeight:           DefaultLineHeight,
			MaxLineWidth:         DefaultMaxLineWidth,
			ReadOnly:             false,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	e := c.Editor
	if e.TabSize < 1 || e.TabSize > maxTabSize {
		return fmt.Errorf("editor.tab_size %d out of range 1..%d", e.TabSize, maxTabSize)
	}
	if e.FontSize <= 0 {
		return fmt.Errorf("editor.font_size %v must be positive", e.FontSize)
	}
	if e.LineHeight <= 0 {
		return fmt.Errorf("editor.line_height %v must be positive", e.LineHeight)
	}
	if e.MaxLineWidth < 0 {
		return fmt.Errorf("editor.max_line_width %d must not be negative", e.MaxLineWidth)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
