// Package text cleans up raw OCR output before it reaches the transcript.
package text

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize collapses an OCR result into a single transcript line: control
// characters are dropped, runs of whitespace (including newlines from
// multi-line frames) become one space, and surrounding whitespace is
// trimmed. Returns "" for input with no visible content.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(b.String(), " "))
}

// Legible reports whether an OCR result looks like real text rather than
// recognition noise. Tesseract emits stray punctuation for textless frames;
// requiring at least a third of the characters to be letters or digits
// filters those out while keeping short genuine captions.
func Legible(s string) bool {
	total := 0
	meaningful := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			meaningful++
		}
	}
	if total == 0 {
		return false
	}
	return float64(meaningful)/float64(total) >= 0.33
}
