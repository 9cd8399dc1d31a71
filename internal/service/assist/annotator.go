package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/grammar"
)

const annotateSystemPrompt = `You are an English teacher helping Japanese learners study English sentences.`

// ProgressFunc is called after each annotation call with the number of
// processed sentences and the batch size.
type ProgressFunc func(done, total int)

// Annotator requests translations and grammar notes for English sentences.
type Annotator struct {
	log         *slog.Logger
	temperature float64
}

// NewAnnotator creates an Annotator.
func NewAnnotator(log *slog.Logger, cfg config.LLMConfig) *Annotator {
	return &Annotator{
		log:         log.With("service", "annotator"),
		temperature: cfg.Temperature,
	}
}

// Annotate returns a translation and grammar explanation for english.
// A nil client yields an empty annotation and no error. On a remote failure
// the annotation is empty and the error is returned.
func (a *Annotator) Annotate(ctx context.Context, client completion.Completer, english string) (domain.Annotation, error) {
	if client == nil {
		return domain.Annotation{}, nil
	}

	resp, err := client.Complete(ctx, completion.Request{
		System:      annotateSystemPrompt,
		Prompt:      buildAnnotatePrompt(english),
		Temperature: a.temperature,
	})
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("annotate: %w", err)
	}

	ja, gr := completion.ParseLabeled(resp, completion.JapaneseLabels)
	return domain.Annotation{Japanese: ja, Grammar: gr}, nil
}

// AnnotateAll annotates every incomplete sentence in place, one call at a
// time. Only empty fields are filled. A failed call becomes a notice and the
// batch continues.
func (a *Annotator) AnnotateAll(ctx context.Context, client completion.Completer, sentences []domain.Sentence, progress ProgressFunc) []domain.Notice {
	if client == nil {
		return nil
	}

	var targets []int
	for i, s := range sentences {
		if !s.IsComplete() {
			targets = append(targets, i)
		}
	}

	var (
		notices []domain.Notice
		failed  int
	)
	for n, i := range targets {
		if err := ctx.Err(); err != nil {
			notices = append(notices, domain.Notice{
				Level:   domain.NoticeError,
				Message: fmt.Sprintf("annotation stopped after %d of %d sentences: %v", n, len(targets), err),
			})
			break
		}

		ann, err := a.Annotate(ctx, client, sentences[i].English)
		if err != nil {
			failed++
			a.log.WarnContext(ctx, "annotation failed",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			notices = append(notices, domain.Notice{
				Level:   domain.NoticeWarning,
				Message: fmt.Sprintf("sentence %d: %v", i+1, err),
			})
		} else {
			if sentences[i].Japanese == "" {
				sentences[i].Japanese = ann.Japanese
			}
			if sentences[i].Grammar == "" {
				sentences[i].Grammar = ann.Grammar
			}
		}

		if progress != nil {
			progress(n+1, len(targets))
		}
	}

	if len(targets) > 0 {
		a.log.InfoContext(ctx, "annotation batch finished",
			slog.Int("total", len(targets)),
			slog.Int("failed", failed))
	}
	return notices
}

// NeedsAnnotation reports whether a freshly loaded list should be annotated:
// it is non-empty and no sentence has a translation or grammar note.
func NeedsAnnotation(sentences []domain.Sentence) bool {
	if len(sentences) == 0 {
		return false
	}
	for _, s := range sentences {
		if !s.IsBlank() {
			return false
		}
	}
	return true
}

func buildAnnotatePrompt(english string) string {
	labels := grammar.AllCategories()
	terms := make([]string, len(labels))
	for i, c := range labels {
		terms[i] = c.String()
	}

	return fmt.Sprintf(`次の英文を自然な日本語に翻訳し、重要な文法ポイントを簡潔に説明してください。

英文: %s

文法の説明では、当てはまる場合は次の用語をそのまま使ってください: %s

必ず次の形式だけで答えてください:
%s: <日本語訳>
%s: <文法の説明>`,
		english,
		strings.Join(terms, "、"),
		completion.JapaneseLabels.Translation,
		completion.JapaneseLabels.Grammar,
	)
}
