package assist

import (
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// sentenceEnd matches terminal punctuation followed by whitespace and a capital.
var sentenceEnd = regexp.MustCompile(`[.!?]\s+\p{Lu}`)

// SplitHeuristic splits each line after ".", "!" or "?" when the next word
// starts with a capital letter. Abbreviations are not special-cased.
func SplitHeuristic(paragraph string) []string {
	var out []string
	for _, line := range strings.Split(paragraph, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		start := 0
		for _, loc := range sentenceEnd.FindAllStringIndex(line, -1) {
			cut := loc[0] + 1
			out = appendFragment(out, line[start:cut])
			start = cut
		}
		out = appendFragment(out, line[start:])
	}
	return out
}

func appendFragment(out []string, fragment string) []string {
	if f := strings.TrimSpace(fragment); f != "" {
		return append(out, f)
	}
	return out
}

var punktTokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// SplitPunkt splits with the Punkt model trained on English, which knows
// common abbreviations. It falls back to SplitHeuristic if the model cannot load.
func SplitPunkt(paragraph string) []string {
	tok, err := punktTokenizer()
	if err != nil {
		return SplitHeuristic(paragraph)
	}

	var out []string
	for _, line := range strings.Split(paragraph, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, s := range tok.Tokenize(line) {
			out = appendFragment(out, s.Text)
		}
	}
	return out
}
