package completion

import (
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)

// ParseNumberedList collects the text of "1. text" or "1) text" lines, in order.
// Other lines are ignored.
func ParseNumberedList(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		if item := strings.TrimSpace(m[1]); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Labels are the line prefixes of a two-field labeled response.
type Labels struct {
	Translation string
	Grammar     string
}

// JapaneseLabels is the label pair used for translation and grammar notes.
var JapaneseLabels = Labels{Translation: "翻訳", Grammar: "文法"}

// ParseLabeled reads a "<label>: payload" response. The first translation
// line wins. The grammar line starts the explanation, and every following
// non-empty line that is not a translation line is appended with a space.
// The separator may be an ASCII or full-width colon.
func ParseLabeled(text string, labels Labels) (translation, grammar string) {
	var (
		haveTranslation bool
		inGrammar       bool
		grammarParts    []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if payload, ok := labeledPayload(line, labels.Translation); ok {
			if !haveTranslation {
				translation = payload
				haveTranslation = true
			}
			continue
		}

		if payload, ok := labeledPayload(line, labels.Grammar); ok && !inGrammar {
			inGrammar = true
			if payload != "" {
				grammarParts = append(grammarParts, payload)
			}
			continue
		}

		if inGrammar {
			grammarParts = append(grammarParts, line)
		}
	}

	return translation, strings.Join(grammarParts, " ")
}

// labeledPayload strips "label:" or "label：" from line.
func labeledPayload(line, label string) (string, bool) {
	if label == "" || !strings.HasPrefix(line, label) {
		return "", false
	}
	rest := strings.TrimLeft(line[len(label):], " \t")
	for _, sep := range []string{":", "："} {
		if strings.HasPrefix(rest, sep) {
			return strings.TrimSpace(rest[len(sep):]), true
		}
	}
	return "", false
}
