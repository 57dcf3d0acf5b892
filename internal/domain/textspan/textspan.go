// Package textspan locates substrings and cuts character windows around them
// without splitting multi-byte characters.
package textspan

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) inside a string.
type Span struct {
	Start int
	End   int
}

// Around returns s[start:end] extended by up to radius characters on each side,
// clipped to the string bounds. start and end must lie on rune boundaries.
func Around(s string, start, end, radius int) string {
	from := start
	for i := 0; i < radius && from > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:from])
		from -= size
	}
	to := end
	for i := 0; i < radius && to < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[to:])
		to += size
	}
	return s[from:to]
}

// IndexFold finds the first case-insensitive occurrence of substr in s.
// The returned span indexes s, so s[span.Start:span.End] keeps the original case.
// ok is false when substr is empty or absent.
func IndexFold(s, substr string) (Span, bool) {
	if substr == "" {
		return Span{}, false
	}
	// ASCII lower-casing maps byte for byte, so offsets in the lowered copy hold for s.
	if isASCII(s) && isASCII(substr) {
		i := strings.Index(strings.ToLower(s), strings.ToLower(substr))
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: i, End: i + len(substr)}, true
	}

	n := utf8.RuneCountInString(substr)
	for i := range s {
		end := advance(s, i, n)
		if end < 0 {
			break
		}
		if strings.EqualFold(s[i:end], substr) {
			return Span{Start: i, End: end}, true
		}
	}
	return Span{}, false
}

// advance returns the byte offset n runes after from, or -1 if s is too short.
func advance(s string, from, n int) int {
	pos := from
	for k := 0; k < n; k++ {
		if pos >= len(s) {
			return -1
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return pos
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
