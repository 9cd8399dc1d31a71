package ingest

import (
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// ParsePlain makes one record per non-empty line.
func ParsePlain(content string) []domain.Sentence {
	lines := splitLines(content)
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return fromStrings(lines)
}
