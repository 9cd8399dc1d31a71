// Package assist holds the completion-backed helpers: sentence splitting
// for free-form uploads and translation/grammar annotation.
package assist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
)

const splitSystemPrompt = `You split English text into sentences.
Split only on true sentence boundaries. Do not split after abbreviations such as Mr., Mrs., Dr., St., e.g., i.e. or etc., and do not split inside decimal or time numerals such as 3.14 or 10:30 a.m.
Keep the wording of every sentence exactly as given.
Answer with a numbered list, one sentence per line, in the form "1. sentence", and nothing else.`

// Splitter splits a paragraph into sentences, preferring the completion
// service and falling back to a local strategy.
type Splitter struct {
	log         *slog.Logger
	client      completion.Completer
	local       func(string) []string
	temperature float64
}

// NewSplitter creates a Splitter. client may be nil, in which case only the
// local strategy is used.
func NewSplitter(log *slog.Logger, client completion.Completer, cfg config.LLMConfig) *Splitter {
	local := SplitHeuristic
	if cfg.LocalSplitter == config.SplitterPunkt {
		local = SplitPunkt
	}
	return &Splitter{
		log:         log.With("service", "splitter"),
		client:      client,
		local:       local,
		temperature: cfg.Temperature,
	}
}

// Split never fails: remote errors and empty answers downgrade to the local strategy.
func (s *Splitter) Split(ctx context.Context, paragraph string) []string {
	if strings.TrimSpace(paragraph) == "" {
		return nil
	}
	if s.client == nil {
		return s.local(paragraph)
	}

	resp, err := s.client.Complete(ctx, completion.Request{
		System:      splitSystemPrompt,
		Prompt:      "Split the following text into sentences:\n\n" + paragraph,
		Temperature: s.temperature,
	})
	if err != nil {
		s.log.WarnContext(ctx, "remote split failed, using local splitter", slog.String("error", err.Error()))
		return s.local(paragraph)
	}

	sentences := completion.ParseNumberedList(resp)
	if len(sentences) == 0 {
		s.log.WarnContext(ctx, "remote split returned no list, using local splitter",
			slog.Int("response_len", len(resp)))
		return s.local(paragraph)
	}

	s.log.DebugContext(ctx, "paragraph split", slog.Int("sentences", len(sentences)))
	return sentences
}
