// Package textutil provides pure position and whitespace scanning helpers
// over raw source buffers. All offsets are byte offsets; all functions are
// stateless.
package textutil

// IsSpace reports whether b is horizontal or vertical whitespace.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// NextNonSpace returns the offset of the first non-whitespace byte at or
// after from, or len(text) if the rest of the buffer is whitespace.
func NextNonSpace(text []byte, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(text); i++ {
		if !IsSpace(text[i]) {
			return i
		}
	}
	return len(text)
}

// PrevNonSpace returns the offset of the last non-whitespace byte strictly
// before from, or -1 if there is none.
func PrevNonSpace(text []byte, from int) int {
	if from > len(text) {
		from = len(text)
	}
	for i := from - 1; i >= 0; i-- {
		if !IsSpace(text[i]) {
			return i
		}
	}
	return -1
}

// LineStart returns the offset of the first byte of the line containing
// offset. The start of the buffer counts as a line start.
func LineStart(text []byte, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	for i := offset - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// IndentationAt returns the run of spaces and tabs between the start of the
// line containing offset and the first non-indentation byte on that line.
// The run is clipped at offset, so a caller positioned mid-indentation sees
// only the indentation before it.
func IndentationAt(text []byte, offset int) string {
	start := LineStart(text, offset)
	end := start
	for end < len(text) && end < offset && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return string(text[start:end])
}

// IsFirstOnLine reports whether only indentation precedes offset on its
// line.
func IsFirstOnLine(text []byte, offset int) bool {
	start := LineStart(text, offset)
	for i := start; i < offset && i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return false
		}
	}
	return true
}

// Splice replaces text[start:end] with insert and returns the new buffer.
// The input slice is not modified.
func Splice(text []byte, start, end int, insert string) []byte {
	out := make([]byte, 0, len(text)-(end-start)+len(insert))
	out = append(out, text[:start]...)
	out = append(out, insert...)
	out = append(out, text[end:]...)
	return out
}

// Indent prefixes every non-empty line of s with prefix. Blank lines stay
// blank so that indented blocks carry no trailing whitespace.
func Indent(s string, prefix string) string {
	if prefix == "" || s == "" {
		return s
	}
	out := make([]byte, 0, len(s)+len(prefix)*4)
	lineStart := true
	for i := 0; i < len(s); i++ {
		if lineStart && s[i] != '\n' {
			out = append(out, prefix...)
		}
		out = append(out, s[i])
		lineStart = s[i] == '\n'
	}
	return string(out)
}

// ScanBackOver returns the smallest offset a <= from such that
// text[a:from] consists only of whitespace and bytes contained in chars.
// Removal policies use it to absorb separator tokens ("=", ":", ",") and
// the whitespace around them.
func ScanBackOver(text []byte, from int, chars string) int {
	if from > len(text) {
		from = len(text)
	}
	a := from
	for a > 0 {
		b := text[a-1]
		if IsSpace(b) || containsByte(chars, b) {
			a--
			continue
		}
		break
	}
	return a
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
