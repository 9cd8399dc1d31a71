package ingest

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

const headerEnglishJA = "英文"

var headerTokens = []string{"english", "japanese", "grammar"}

// ParseTSV parses tab-separated rows of English, Japanese and grammar.
// An optional header line and an optional leading row-number column are
// recognized. Rows with fewer than three columns are skipped.
func ParseTSV(content string) []domain.Sentence {
	// Only line breaks are trimmed: trailing tabs are empty columns.
	content = strings.Trim(content, "\r\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	start := 0
	if isTSVHeader(lines[0]) {
		start = 1
	}

	var out []domain.Sentence
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")

		var s domain.Sentence
		switch {
		case len(cols) >= 4 && isNumeric(strings.TrimSpace(cols[0])):
			s = sentenceFromColumns(cols[1:])
		case len(cols) >= 3:
			s = sentenceFromColumns(cols)
		default:
			continue
		}

		if s.English == "" || isStrayHeader(s.English) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func isTSVHeader(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	cols := strings.Split(line, "\t")
	if len(cols) >= 4 && strings.TrimSpace(cols[1]) == headerEnglishJA {
		return true
	}
	// A numbered row is data even when its sentence mentions "English".
	if len(cols) >= 4 && isNumeric(strings.TrimSpace(cols[0])) {
		return false
	}
	lower := strings.ToLower(line)
	for _, tok := range headerTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func isStrayHeader(english string) bool {
	n := domain.NormalizeText(english)
	return n == headerEnglishJA || n == "english"
}

func sentenceFromColumns(cols []string) domain.Sentence {
	return domain.Sentence{
		English:  strings.TrimSpace(cols[0]),
		Japanese: strings.TrimSpace(cols[1]),
		Grammar:  strings.TrimSpace(cols[2]),
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
