// Package grammar derives grammar categories from free-text grammar notes
// and decorates English sentences with highlight markers.
package grammar

import (
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

type rule struct {
	category domain.GrammarCategory
	pattern  *regexp.Regexp
}

// Notes mix Japanese and English, so word and space classes are Unicode
// aware: a word may be kana or kanji, and U+3000 separates words.
const (
	sp   = `[\s\p{Zs}]+`
	word = `[\p{L}\p{N}_]+`
)

// Each rule pairs the Japanese term with English surface shapes.
var rules = []rule{
	{domain.GrammarPresentPerfect, regexp.MustCompile(`(?i)現在完了|have` + sp + word + `ed|has` + sp + word + `ed`)},
	{domain.GrammarPastPerfect, regexp.MustCompile(`(?i)過去完了|had` + sp + word + `ed`)},
	{domain.GrammarRelative, regexp.MustCompile(`(?i)関係[代名]?詞|which|who|whom|whose|that節`)},
	{domain.GrammarSubjunctive, regexp.MustCompile(`(?i)仮定法|would` + sp + `have|could` + sp + `have|should` + sp + `have`)},
	{domain.GrammarPassive, regexp.MustCompile(`(?i)受[動身]態|be` + sp + word + `ed|was` + sp + word + `ed|were` + sp + word + `ed`)},
	{domain.GrammarInfinitive, regexp.MustCompile(`(?i)不定詞|to` + sp + word)},
	{domain.GrammarGerund, regexp.MustCompile(`(?i)動名詞|ing形`)},
	{domain.GrammarParticiple, regexp.MustCompile(`(?i)分詞構文|ing[\s\p{Zs}]*句`)},
	{domain.GrammarComparative, regexp.MustCompile(`(?i)比較級|more` + sp + word + `|er` + sp + `than`)},
	{domain.GrammarSuperlative, regexp.MustCompile(`(?i)最上級|most` + sp + word + `|est`)},
}

// AllCategories returns every known category in label order.
func AllCategories() []domain.GrammarCategory {
	out := make([]domain.GrammarCategory, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	slices.Sort(out)
	return out
}

// Classify returns the categories whose pattern matches grammarText, in label order.
func Classify(grammarText string) []domain.GrammarCategory {
	if strings.TrimSpace(grammarText) == "" {
		return nil
	}
	var out []domain.GrammarCategory
	for _, r := range rules {
		if r.pattern.MatchString(grammarText) {
			out = append(out, r.category)
		}
	}
	slices.Sort(out)
	return out
}

// Categories returns the sorted, de-duplicated set of categories detected
// across all grammar notes in sentences.
func Categories(sentences []domain.Sentence) []domain.GrammarCategory {
	seen := make(map[domain.GrammarCategory]struct{}, len(rules))
	for _, s := range sentences {
		for _, c := range Classify(s.Grammar) {
			seen[c] = struct{}{}
		}
	}

	out := make([]domain.GrammarCategory, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
