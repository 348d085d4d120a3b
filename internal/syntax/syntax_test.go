package syntax

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.rs", LangRust},
		{"app.js", LangJavaScript},
		{"mod.mjs", LangJavaScript},
		{"index.tsx", LangTypeScript},
		{"script.py", LangPython},
		{"page.html", LangHTML},
		{"style.scss", LangCSS},
		{"data.json", LangJSON},
		{"config.yml", LangYAML},
		{"Cargo.toml", LangTOML},
		{"notes.md", LangMarkdown},
		{"NOTES.MD", LangMarkdown},
		{"query.sql", LangSQL},
		{"setup.zsh", LangShell},
		{"main.go", LangGo},
		{"lib.h", LangC},
		{"impl.cxx", LangCPP},
		{"App.java", LangJava},
		{"file.unknown", LangPlain},
		{"README", LangPlain},
		{"", LangPlain},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.filename); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
