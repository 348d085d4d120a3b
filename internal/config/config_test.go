package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.TabSize != 4 {
		t.Errorf("TabSize = %d, want 4", cfg.Editor.TabSize)
	}
	if !cfg.Editor.InsertSpaces {
		t.Error("InsertSpaces should default to true")
	}
	if !cfg.Editor.WordWrap {
		t.Error("WordWrap should default to true")
	}
	if !cfg.Editor.AutoIndent {
		t.Error("AutoIndent should default to true")
	}
	if cfg.Editor.ShowWhitespace {
		t.Error("ShowWhitespace should default to false")
	}
	if cfg.Editor.FontSize != 14.0 {
		t.Errorf("FontSize = %v, want 14", cfg.Editor.FontSize)
	}
	if cfg.Editor.LineHeight != 1.5 {
		t.Errorf("LineHeight = %v, want 1.5", cfg.Editor.LineHeight)
	}
	if cfg.Editor.ReadOnly {
		t.Error("ReadOnly should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(*Config) {}, true},
		{"tab size zero", func(c *Config) { c.Editor.TabSize = 0 }, false},
		{"tab size too large", func(c *Config) { c.Editor.TabSize = 64 }, false},
		{"negative font size", func(c *Config) { c.Editor.FontSize = -1 }, false},
		{"zero line height", func(c *Config) { c.Editor.LineHeight = 0 }, false},
		{"negative wrap width", func(c *Config) { c.Editor.MaxLineWidth = -5 }, false},
		{"unlimited wrap width", func(c *Config) { c.Editor.MaxLineWidth = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	if f, err := DetectFormat("inkstone.toml"); err != nil || f != FormatTOML {
		t.Errorf("got (%v, %v), want toml", f, err)
	}
	if f, err := DetectFormat("inkstone.yaml"); err != nil || f != FormatYAML {
		t.Errorf("got (%v, %v), want yaml", f, err)
	}
	if f, err := DetectFormat("inkstone.YML"); err != nil || f != FormatYAML {
		t.Errorf("got (%v, %v), want yaml for upper-case extension", f, err)
	}
	if _, err := DetectFormat("inkstone.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}

func TestParseTOMLOverridesDefaults(t *testing.T) {
	data := []byte("[editor]\ntab_size = 8\ninsert_spaces = false\n")

	cfg, err := Parse(data, FormatTOML, "test.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.TabSize != 8 {
		t.Errorf("TabSize = %d, want 8", cfg.Editor.TabSize)
	}
	if cfg.Editor.InsertSpaces {
		t.Error("InsertSpaces should be overridden to false")
	}
	if !cfg.Editor.WordWrap {
		t.Error("omitted keys should keep their defaults")
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte("editor:\n  tab_size: 2\n  show_line_numbers: false\n")

	cfg, err := Parse(data, FormatYAML, "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.TabSize != 2 {
		t.Errorf("TabSize = %d, want 2", cfg.Editor.TabSize)
	}
	if cfg.Editor.ShowLineNumbers {
		t.Error("ShowLineNumbers should be overridden to false")
	}
	if !cfg.Editor.AutoIndent {
		t.Error("omitted keys should keep their defaults")
	}
}

func TestParseMalformedTOML(t *testing.T) {
	_, err := Parse([]byte("[editor\ntab_size = 8\n"), FormatTOML, "bad.toml")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %T is not a ParseError", err)
	}
	if parseErr.Path != "bad.toml" {
		t.Errorf("Path = %q, want %q", parseErr.Path, "bad.toml")
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse([]byte("[editor]\ntab_size = 99\n"), FormatTOML, "test.toml")
	if err == nil {
		t.Fatal("expected a validation error for out-of-range tab size")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.TabSize != 4 {
		t.Errorf("TabSize = %d, want the default 4", cfg.Editor.TabSize)
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstone.toml")
	if err := os.WriteFile(path, []byte("[editor]\nword_wrap = false\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.WordWrap {
		t.Error("WordWrap should be overridden to false")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("settings.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Editor.TabSize = 2

	if cfg.Editor.TabSize != 4 {
		t.Error("mutating the clone changed the original")
	}
}
