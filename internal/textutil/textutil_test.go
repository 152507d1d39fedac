package textutil_test

import (
	"sculpt/internal/textutil"
	"testing"
)

func TestNextNonSpace(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from     int
		expected int
	}{
		{name: "at non-space", text: "abc", from: 0, expected: 0},
		{name: "skips spaces", text: "   abc", from: 0, expected: 3},
		{name: "skips mixed whitespace", text: " \t\n x", from: 0, expected: 4},
		{name: "from middle", text: "a   b", from: 1, expected: 4},
		{name: "only whitespace", text: "   ", from: 0, expected: 3},
		{name: "negative from", text: " a", from: -5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.NextNonSpace([]byte(tt.text), tt.from)
			if got != tt.expected {
				t.Errorf("NextNonSpace() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestPrevNonSpace(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from     int
		expected int
	}{
		{name: "directly before", text: "ab", from: 2, expected: 1},
		{name: "skips trailing spaces", text: "ab   ", from: 5, expected: 1},
		{name: "nothing before", text: "   x", from: 3, expected: -1},
		{name: "from past end clips", text: "a ", from: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.PrevNonSpace([]byte(tt.text), tt.from)
			if got != tt.expected {
				t.Errorf("PrevNonSpace() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestLineStart(t *testing.T) {
	text := []byte("first\nsecond\nthird")

	tests := []struct {
		name     string
		offset   int
		expected int
	}{
		{name: "start of buffer", offset: 0, expected: 0},
		{name: "middle of first line", offset: 3, expected: 0},
		{name: "start of second line", offset: 6, expected: 6},
		{name: "middle of second line", offset: 9, expected: 6},
		{name: "third line", offset: 15, expected: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.LineStart(text, tt.offset)
			if got != tt.expected {
				t.Errorf("LineStart(%d) = %d, want %d", tt.offset, got, tt.expected)
			}
		})
	}
}

func TestIndentationAt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		expected string
	}{
		{name: "no indentation", text: "abc", offset: 1, expected: ""},
		{name: "spaces", text: "    x", offset: 4, expected: "    "},
		{name: "tabs", text: "\t\tx", offset: 2, expected: "\t\t"},
		{name: "second line", text: "a\n  b", offset: 4, expected: "  "},
		{name: "clipped at offset", text: "    x", offset: 2, expected: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.IndentationAt([]byte(tt.text), tt.offset)
			if got != tt.expected {
				t.Errorf("IndentationAt(%d) = %q, want %q", tt.offset, got, tt.expected)
			}
		})
	}
}

func TestIsFirstOnLine(t *testing.T) {
	text := []byte("a\n  b\nc d")

	tests := []struct {
		name     string
		offset   int
		expected bool
	}{
		{name: "buffer start", offset: 0, expected: true},
		{name: "after indentation", offset: 4, expected: true},
		{name: "after other text", offset: 8, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.IsFirstOnLine(text, tt.offset)
			if got != tt.expected {
				t.Errorf("IsFirstOnLine(%d) = %v, want %v", tt.offset, got, tt.expected)
			}
		})
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		start    int
		end      int
		insert   string
		expected string
	}{
		{name: "insert at start", text: "world", start: 0, end: 0, insert: "hello ", expected: "hello world"},
		{name: "insert at end", text: "hello", start: 5, end: 5, insert: "!", expected: "hello!"},
		{name: "replace middle", text: "a--b", start: 1, end: 3, insert: "++", expected: "a++b"},
		{name: "delete", text: "abc", start: 1, end: 2, insert: "", expected: "ac"},
		{name: "replace all", text: "old", start: 0, end: 3, insert: "new", expected: "new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := []byte(tt.text)
			got := textutil.Splice(original, tt.start, tt.end, tt.insert)
			if string(got) != tt.expected {
				t.Errorf("Splice() = %q, want %q", got, tt.expected)
			}
			if string(original) != tt.text {
				t.Errorf("Splice() modified its input: %q", original)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		prefix   string
		expected string
	}{
		{name: "single line", text: "x = 1;", prefix: "  ", expected: "  x = 1;"},
		{name: "multiple lines", text: "a {\n  b;\n}", prefix: "\t", expected: "\ta {\n\t  b;\n\t}"},
		{name: "blank lines stay blank", text: "a\n\nb", prefix: "  ", expected: "  a\n\n  b"},
		{name: "empty prefix", text: "a\nb", prefix: "", expected: "a\nb"},
		{name: "empty text", text: "", prefix: "  ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.Indent(tt.text, tt.prefix)
			if got != tt.expected {
				t.Errorf("Indent() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestScanBackOver(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from     int
		chars    string
		expected int
	}{
		{name: "equals with spaces", text: "x = 1", from: 4, chars: "=", expected: 1},
		{name: "equals no spaces", text: "x=1", from: 2, chars: "=", expected: 1},
		{name: "nothing to absorb", text: "x1", from: 1, chars: "=", expected: 1},
		{name: "whitespace only", text: "a   b", from: 4, chars: "", expected: 1},
		{name: "colon", text: "x: T", from: 3, chars: ":", expected: 1},
		{name: "stops at other text", text: "ab = =", from: 6, chars: "=", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.ScanBackOver([]byte(tt.text), tt.from, tt.chars)
			if got != tt.expected {
				t.Errorf("ScanBackOver(%d, %q) = %d, want %d", tt.from, tt.chars, got, tt.expected)
			}
		})
	}
}
