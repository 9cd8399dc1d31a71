// Package ingest turns uploaded sentence files into domain.Sentence lists.
// Parsers are pure and never fail: malformed lines are skipped and
// unparseable documents yield an empty list.
package ingest

import (
	"context"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Splitter breaks a free-form block of text into individual sentences.
type Splitter interface {
	Split(ctx context.Context, block string) []string
}

// Result is the outcome of parsing one uploaded file.
type Result struct {
	Format    domain.Format
	Sentences []domain.Sentence
}

// Parser decodes, detects and parses uploads. When Splitter is set, plain
// text is split as one block instead of one sentence per line.
type Parser struct {
	Splitter Splitter
}

// Parse decodes raw, picks a format from fileName and content, and parses it.
func (p Parser) Parse(ctx context.Context, fileName string, raw []byte) Result {
	content := Decode(raw)
	format := Detect(fileName, content)

	var sentences []domain.Sentence
	switch format {
	case domain.FormatTSV:
		sentences = ParseTSV(content)
	case domain.FormatJSON:
		sentences = ParseJSON(content)
	case domain.FormatYAML:
		sentences = ParseYAML(content)
	case domain.FormatPipe:
		sentences = ParsePipe(content)
	default:
		if p.Splitter != nil {
			sentences = fromStrings(p.Splitter.Split(ctx, strings.TrimSpace(content)))
		} else {
			sentences = ParsePlain(content)
		}
	}

	return Result{Format: format, Sentences: sentences}
}

// fromStrings builds records from bare English strings, dropping blanks.
func fromStrings(lines []string) []domain.Sentence {
	out := make([]domain.Sentence, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, domain.Sentence{English: l})
	}
	return out
}

// splitLines trims the whole content and splits it into lines without
// trailing carriage returns.
func splitLines(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
