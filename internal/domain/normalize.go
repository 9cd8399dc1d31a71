package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares text for comparison:
//   - trims leading/trailing whitespace (including the ideographic space U+3000)
//   - converts to lowercase
//   - collapses every run of whitespace into a single ASCII space
//
// Japanese text passes through unchanged apart from whitespace handling.
func NormalizeText(text string) string {
	text = strings.TrimFunc(text, unicode.IsSpace)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
