package grammar

import (
	"regexp"
	"strings"
)

const (
	htmlOpen  = `<span class="highlight">`
	htmlClose = `</span>`
)

// connectors are replaced as exact-case substrings, in this order.
var connectors = []string{
	"However", "Therefore", "Although", "Because", "Since",
	"While", "When", "If", "Unless", "As",
}

// relatives are matched as whole words, ignoring case.
var relatives = func() []*regexp.Regexp {
	words := []string{"which", "who", "whom", "whose", "that", "where", "when"}
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + w + `\b`)
	}
	return out
}()

// Highlighter wraps grammar-signalling words using Wrap.
type Highlighter struct {
	Wrap func(word string) string
}

// NewHTMLHighlighter returns a Highlighter that emits highlight spans.
func NewHTMLHighlighter() Highlighter {
	return Highlighter{Wrap: func(w string) string { return htmlOpen + w + htmlClose }}
}

// Highlight returns a copy of text with connectors and relative words wrapped.
// Connectors are applied first; a word matched by both passes is wrapped twice.
// Matched text keeps its original case.
func (h Highlighter) Highlight(text string) string {
	if h.Wrap == nil {
		return text
	}
	for _, c := range connectors {
		text = strings.ReplaceAll(text, c, h.Wrap(c))
	}
	for _, re := range relatives {
		text = re.ReplaceAllStringFunc(text, h.Wrap)
	}
	return text
}

// StripHTMLMarkers removes the markers added by NewHTMLHighlighter.
func StripHTMLMarkers(text string) string {
	text = strings.ReplaceAll(text, htmlOpen, "")
	return strings.ReplaceAll(text, htmlClose, "")
}
