package textutil

import "testing"

func TestIsWordRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'0', true},
		{'_', true},
		{'é', true},
		{'世', true},
		{' ', false},
		{'-', false},
		{'.', false},
		{'\t', false},
	}

	for _, tt := range tests {
		if got := IsWordRune(tt.r); got != tt.want {
			t.Errorf("IsWordRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestWordAt(t *testing.T) {
	line := "hello world foo_bar"

	tests := []struct {
		name  string
		col   int
		start int
		end   int
		ok    bool
	}{
		{"inside first word", 2, 0, 5, true},
		{"inside second word", 8, 6, 11, true},
		{"underscore joins word", 15, 12, 19, true},
		{"just after word", 5, 0, 5, true},
		{"on space before word start", 6, 6, 11, true},
		{"column out of range", 99, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := WordAt(line, tt.col)
			if ok != tt.ok {
				t.Fatalf("WordAt(%d) ok = %v, want %v", tt.col, ok, tt.ok)
			}
			if ok && (start != tt.start || end != tt.end) {
				t.Errorf("WordAt(%d) = (%d,%d), want (%d,%d)", tt.col, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestWordAtNoWord(t *testing.T) {
	if _, _, ok := WordAt("   ", 1); ok {
		t.Error("expected no word in whitespace-only line")
	}
	if _, _, ok := WordAt("", 0); ok {
		t.Error("expected no word in empty line")
	}
}

func TestWordAtMultibyte(t *testing.T) {
	start, end, ok := WordAt("héllo wörld", 8)
	if !ok {
		t.Fatal("expected a word")
	}
	if start != 6 || end != 11 {
		t.Errorf("got (%d,%d), want (6,11)", start, end)
	}
}

func TestLeadingIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"    func main()", "    "},
		{"\t\tindented", "\t\t"},
		{" \t mixed", " \t "},
		{"none", ""},
		{"", ""},
		{"   ", "   "},
	}

	for _, tt := range tests {
		if got := LeadingIndent(tt.line); got != tt.want {
			t.Errorf("LeadingIndent(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestByteIndex(t *testing.T) {
	s := "a世b"

	tests := []struct {
		runeOffset int
		want       int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{9, 5},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := ByteIndex(s, tt.runeOffset); got != tt.want {
			t.Errorf("ByteIndex(%d) = %d, want %d", tt.runeOffset, got, tt.want)
		}
	}
}

func TestRuneIndex(t *testing.T) {
	s := "a世b"

	tests := []struct {
		byteIndex int
		want      int
	}{
		{0, 0},
		{1, 1},
		{4, 2},
		{5, 3},
		{99, 3},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := RuneIndex(s, tt.byteIndex); got != tt.want {
			t.Errorf("RuneIndex(%d) = %d, want %d", tt.byteIndex, got, tt.want)
		}
	}
}

func TestByteRuneIndexRoundTrip(t *testing.T) {
	s := "héllo 世界"
	for r := 0; r <= 8; r++ {
		if got := RuneIndex(s, ByteIndex(s, r)); got != r {
			t.Errorf("round trip rune offset %d -> %d", r, got)
		}
	}
}

func TestGraphemeCount(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"hello", 5},
		{"", 0},
		{"héllo", 5},
		{"é", 1}, // e + combining acute
		{"世界", 2},
	}

	for _, tt := range tests {
		if got := GraphemeCount(tt.s); got != tt.want {
			t.Errorf("GraphemeCount(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"abc", 3},
		{"世界", 4},
		{"", 0},
	}

	for _, tt := range tests {
		if got := DisplayWidth(tt.s); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello world", 8, "..."); got != "hello..." {
		t.Errorf("TruncateWidth = %q, want %q", got, "hello...")
	}
	if got := TruncateWidth("short", 10, "..."); got != "short" {
		t.Errorf("TruncateWidth should not touch short strings, got %q", got)
	}
}
