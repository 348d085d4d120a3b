// Package syntax provides language detection and line-oriented syntax
// highlighting.
//
// Highlighting is regex-rule based and deliberately approximate: it
// styles single lines with an opaque carry-over state for multi-line
// constructs such as fenced code blocks. The editor core never depends
// on this package; callers that render content attach a Highlighter
// themselves.
package syntax

import (
	"path/filepath"
	"strings"
)

// Language names returned by DetectLanguage.
const (
	LangRust       = "rust"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangPython     = "python"
	LangHTML       = "html"
	LangCSS        = "css"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangTOML       = "toml"
	LangMarkdown   = "markdown"
	LangSQL        = "sql"
	LangShell      = "shell"
	LangGo         = "go"
	LangC          = "c"
	LangCPP        = "cpp"
	LangJava       = "java"
	LangPlain      = "plain"
)

// DetectLanguage maps a filename's extension to a language name. The
// match is case-insensitive; unknown extensions map to LangPlain.
func DetectLanguage(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "rs":
		return LangRust
	case "js", "mjs", "cjs":
		return LangJavaScript
	case "ts", "mts", "cts", "tsx":
		return LangTypeScript
	case "py", "pyi":
		return LangPython
	case "html", "htm":
		return LangHTML
	case "css", "scss", "sass", "less":
		return LangCSS
	case "json":
		return LangJSON
	case "yaml", "yml":
		return LangYAML
	case "toml":
		return LangTOML
	case "md", "markdown":
		return LangMarkdown
	case "sql":
		return LangSQL
	case "sh", "bash", "zsh", "fish":
		return LangShell
	case "go":
		return LangGo
	case "c", "h":
		return LangC
	case "cpp", "cxx", "cc", "hpp", "hxx":
		return LangCPP
	case "java":
		return LangJava
	default:
		return LangPlain
	}
}
