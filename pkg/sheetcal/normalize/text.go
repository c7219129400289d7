package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// StripControl removes C0 and C1 control characters from a text blob,
// keeping newline, carriage return and tab.
func StripControl(s string) string {
	if !hasControl(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isStrippable(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripControlBytes is StripControl for raw file contents.
func StripControlBytes(b []byte) []byte {
	return []byte(StripControl(string(b)))
}

func hasControl(s string) bool {
	for _, r := range s {
		if isStrippable(r) {
			return true
		}
	}
	return false
}

func isStrippable(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r <= 0x1f:
		return true
	case r >= 0x7f && r <= 0x9f:
		return true
	}
	return false
}

// CellText cleans a raw cell value: control characters removed, Unicode
// composed to NFC (sheets exported on macOS carry decomposed Hangul) and
// surrounding space trimmed.
func CellText(s string) string {
	s = StripControl(s)
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return strings.TrimSpace(s)
}

// Fold prepares text for keyword matching: CellText, lower-cased, inner
// whitespace collapsed to single spaces.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(CellText(s))), " ")
}

var placeholders = map[string]struct{}{
	"":     {},
	"-":    {},
	"n/a":  {},
	"null": {},
}

// IsPlaceholder reports whether a cell carries no real data.
func IsPlaceholder(s string) bool {
	_, ok := placeholders[strings.ToLower(CellText(s))]
	return ok
}

// IsHangulSyllable reports whether r is a precomposed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

// IsHangulName reports whether s is a bare 2 to 4 syllable Hangul token,
// the shape of a short Korean personal name.
func IsHangulName(s string) bool {
	s = CellText(s)
	n := utf8.RuneCountInString(s)
	if n < 2 || n > 4 {
		return false
	}
	for _, r := range s {
		if !IsHangulSyllable(r) {
			return false
		}
	}
	return true
}
