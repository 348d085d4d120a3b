// Package main is the entry point for the inkstone text tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/inkstone/internal/editor"
	"github.com/dshills/inkstone/internal/editor/find"
	"github.com/dshills/inkstone/internal/editor/fold"
	"github.com/dshills/inkstone/internal/editor/stats"
	"github.com/dshills/inkstone/internal/script"
	"github.com/dshills/inkstone/internal/syntax"
	"github.com/dshills/inkstone/internal/textutil"
)

// defaultWrapWidth is used by -wrap when neither the flag value nor the
// configuration supplies a width.
const defaultWrapWidth = 80

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	switch {
	case opts.Stats:
		return runStats(opts)
	case opts.Outline:
		return runOutline(opts)
	case opts.WrapSet:
		return runWrap(opts)
	case opts.Transform != "":
		return runTransform(opts)
	case opts.ReplaceSet:
		return runReplace(opts)
	case opts.Find != "":
		return runFind(opts)
	}

	if len(opts.Files) != 1 {
		fmt.Fprintf(os.Stderr, "Error: the viewer takes exactly one file\n")
		flag.Usage()
		return 2
	}
	return runView(opts)
}

// options carries the parsed command line.
type options struct {
	ConfigPath string
	Stats      bool
	Outline    bool
	Find       string
	Replace    string
	ReplaceSet bool
	Transform  string
	Wrap       int
	WrapSet    bool
	Regex      bool
	Case       bool
	Word       bool
	Write      bool
	ReadOnly   bool
	Files      []string
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Stats, "stats", false, "Print document statistics and exit")
	flag.BoolVar(&opts.Outline, "outline", false, "Print the heading outline and exit")
	flag.StringVar(&opts.Find, "find", "", "Print lines matching a query and exit")
	flag.StringVar(&opts.Replace, "replace", "", "With -find, replace matches (use -write to save)")
	flag.StringVar(&opts.Transform, "transform", "", "Run a Lua transform script over each file")
	flag.IntVar(&opts.Wrap, "wrap", 0, "Reflow text to N columns and exit (0 uses the configured width)")
	flag.BoolVar(&opts.Regex, "regex", false, "Treat the -find query as a regular expression")
	flag.BoolVar(&opts.Case, "case", false, "Match -find case-sensitively")
	flag.BoolVar(&opts.Word, "word", false, "Match -find on whole words only")
	flag.BoolVar(&opts.Write, "write", false, "Write -replace/-transform results back to the files")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the viewer read-only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open the viewer read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkstone - text editing and inspection tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkstone [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inkstone notes.md                     Open the interactive viewer\n")
		fmt.Fprintf(os.Stderr, "  inkstone -stats notes.md              Word/char/heading counts\n")
		fmt.Fprintf(os.Stderr, "  inkstone -outline notes.md            Heading outline with line numbers\n")
		fmt.Fprintf(os.Stderr, "  inkstone -find TODO -word *.md        Grep-style match listing\n")
		fmt.Fprintf(os.Stderr, "  inkstone -find foo -replace bar -write notes.md\n")
		fmt.Fprintf(os.Stderr, "  inkstone -transform upper.lua notes.md\n")
		fmt.Fprintf(os.Stderr, "  inkstone -wrap 72 notes.md            Reflow to 72 columns\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Inkstone %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// An empty replacement string is a valid replacement, and -wrap
	// without a width falls back to the configured width, so track
	// whether those flags were given at all.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "replace":
			opts.ReplaceSet = true
		case "wrap":
			opts.WrapSet = true
		}
	})

	opts.Files = flag.Args()
	return opts
}

// requireFiles exits with a usage error when a batch mode got no files.
func requireFiles(opts options, mode string) bool {
	if len(opts.Files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s needs at least one file\n", mode)
		return false
	}
	return true
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func runStats(opts options) int {
	if !requireFiles(opts, "-stats") {
		return 2
	}

	status := 0
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		printStats(path, content, len(opts.Files) > 1)
	}
	return status
}

func printStats(path, content string, showHeader bool) {
	if showHeader {
		fmt.Printf("%s\n", path)
	}

	markdown := syntax.DetectLanguage(path) == syntax.LangMarkdown
	var text stats.TextStats
	var doc stats.DocumentStats
	if markdown {
		doc = stats.Compute(content)
		text = doc.Text
	} else {
		text = stats.ComputeText(content)
	}

	fmt.Printf("  words          %d\n", text.Words)
	fmt.Printf("  chars          %d (%d without spaces)\n", text.Chars, text.CharsNoSpaces)
	fmt.Printf("  graphemes      %d\n", text.Graphemes)
	fmt.Printf("  lines          %d\n", text.Lines)
	fmt.Printf("  paragraphs     %d\n", text.Paragraphs)
	fmt.Printf("  sentences      %d\n", text.Sentences)
	fmt.Printf("  reading time   %s\n", text.ReadingTimeLabel())

	if !markdown {
		return
	}
	fmt.Printf("  headings       %d%s\n", doc.HeadingCount, headingBreakdown(doc))
	fmt.Printf("  links          %d\n", doc.LinkCount)
	fmt.Printf("  images         %d\n", doc.ImageCount)
	fmt.Printf("  code blocks    %d\n", doc.CodeBlockCount)
	fmt.Printf("  list items     %d\n", doc.ListItemCount)
	fmt.Printf("  blockquotes    %d\n", doc.BlockquoteCount)
	fmt.Printf("  table rows     %d\n", doc.TableRowCount)
}

func headingBreakdown(doc stats.DocumentStats) string {
	if doc.HeadingCount == 0 {
		return ""
	}
	parts := make([]string, 0, len(doc.HeadingsByLevel))
	for i, n := range doc.HeadingsByLevel {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("h%d:%d", i+1, n))
		}
	}
	return " (" + strings.Join(parts, " ") + ")"
}

func runOutline(opts options) int {
	if !requireFiles(opts, "-outline") {
		return 2
	}

	status := 0
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		if len(opts.Files) > 1 {
			fmt.Printf("%s\n", path)
		}
		printOutline(content)
	}
	return status
}

func printOutline(content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		level, ok := fold.DetectHeadingLevel(line)
		if !ok {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		indent := strings.Repeat("  ", level-1)
		fmt.Printf("%5d  %s%s\n", i+1, indent, text)
	}
}

func runWrap(opts options) int {
	if !requireFiles(opts, "-wrap") {
		return 2
	}

	width := opts.Wrap
	if width <= 0 {
		cfg, err := loadViewConfig(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		width = cfg.Editor.MaxLineWidth
	}
	if width <= 0 {
		width = defaultWrapWidth
	}

	status := 0
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		result := strings.Join(textutil.WrapText(content, width), "\n")
		if err := emitResult(path, result, opts.Write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
		}
	}
	return status
}

// findState builds a search state from the command line options.
func findState(opts options) *find.State {
	state := find.NewState()
	state.Query = opts.Find
	state.Options = find.Options{
		CaseSensitive: opts.Case,
		WholeWord:     opts.Word,
		UseRegex:      opts.Regex,
	}
	return state
}

func runFind(opts options) int {
	if !requireFiles(opts, "-find") {
		return 2
	}

	found := false
	failed := false
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}

		state := findState(opts)
		state.Search(content)
		if !state.HasMatches() {
			continue
		}
		found = true

		doc := editor.New(content)
		for _, m := range state.Matches() {
			pos, err := doc.OffsetToPosition(m.Start)
			if err != nil {
				continue
			}
			line, _ := doc.Line(pos.Line)
			fmt.Printf("%s:%d:%d: %s\n", path, pos.Line+1, pos.Column+1, line)
		}
	}

	// No matches is a distinct exit status, grep style.
	if failed || !found {
		return 1
	}
	return 0
}

func runReplace(opts options) int {
	if opts.Find == "" {
		fmt.Fprintf(os.Stderr, "Error: -replace requires -find\n")
		return 2
	}
	if !requireFiles(opts, "-replace") {
		return 2
	}

	status := 0
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}

		state := findState(opts)
		state.Search(content)
		count := state.MatchCount()
		result := state.ReplaceAll(opts.Replace)

		if err := emitResult(path, result, opts.Write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		if opts.Write {
			fmt.Fprintf(os.Stderr, "%s: %d replaced\n", path, count)
		}
	}
	return status
}

func runTransform(opts options) int {
	if !requireFiles(opts, "-transform") {
		return 2
	}

	runner := script.New()
	defer runner.Close()
	if err := runner.LoadFile(opts.Transform); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	status := 0
	for _, path := range opts.Files {
		content, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
			continue
		}

		result, err := runner.Transform(content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			status = 1
			continue
		}

		if err := emitResult(path, result, opts.Write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
		}
	}
	return status
}

// emitResult writes the new content back to the file, or to stdout when
// -write was not given.
func emitResult(path, content string, write bool) error {
	if !write {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
