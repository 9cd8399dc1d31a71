package ingest

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// listMarker matches a leading "1." or "1、" list number.
var listMarker = regexp.MustCompile(`^\p{Nd}+[.、]\s*`)

// ParsePipe parses lines of the form "1. English｜Japanese｜Grammar".
// Lines without the separator are ignored; missing trailing fields are empty.
func ParsePipe(content string) []domain.Sentence {
	var out []domain.Sentence
	for _, line := range splitLines(content) {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, PipeSeparator) {
			continue
		}
		line = listMarker.ReplaceAllString(line, "")
		parts := strings.Split(line, PipeSeparator)

		s := domain.Sentence{English: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			s.Japanese = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			s.Grammar = strings.TrimSpace(parts[2])
		}
		if s.English == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
