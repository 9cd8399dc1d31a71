package grammar

import (
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Matches reports whether s passes the category filter. An empty selection
// matches everything. Matching is a plain substring test of the label inside
// the grammar note, not the classifier pattern.
func Matches(s domain.Sentence, selected []domain.GrammarCategory) bool {
	if len(selected) == 0 {
		return true
	}
	for _, c := range selected {
		if strings.Contains(s.Grammar, string(c)) {
			return true
		}
	}
	return false
}

// Filter returns the sentences passing the filter along with their original indexes.
func Filter(sentences []domain.Sentence, selected []domain.GrammarCategory) ([]domain.Sentence, []int) {
	var (
		out     []domain.Sentence
		indexes []int
	)
	for i, s := range sentences {
		if Matches(s, selected) {
			out = append(out, s)
			indexes = append(indexes, i)
		}
	}
	return out, indexes
}
