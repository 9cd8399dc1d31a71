package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/ingest"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

// LoadFile parses an upload and replaces the session's sentence list.
// When completion is available, free-form text is split remotely and a list
// with no annotations at all is annotated sentence by sentence before commit.
// An upload without sentences leaves the session unchanged.
func (s *Service) LoadFile(ctx context.Context, input LoadFileInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(input.Content)) > s.cfg.MaxUploadBytes {
		return View{}, domain.NewValidationError("file", fmt.Sprintf("exceeds %d bytes", s.cfg.MaxUploadBytes))
	}

	sess, err := s.store.Get(ctx, input.SessionID)
	if err != nil {
		return View{}, err
	}

	client, notices := s.completerFor(ctx, sess.APIKey)

	parser := ingest.Parser{}
	if client != nil {
		parser.Splitter = assist.NewSplitter(s.log, client, s.llmCfg)
	}
	res := parser.Parse(ctx, input.FileName, input.Content)
	if len(res.Sentences) == 0 {
		s.log.InfoContext(ctx, "upload had no sentences",
			slog.String("session_id", input.SessionID.String()),
			slog.String("format", res.Format.String()))
		return View{}, domain.NewValidationError("file", MsgNoSentences)
	}

	sentences := res.Sentences
	if limit := s.cfg.MaxSentences; limit > 0 && len(sentences) > limit {
		notices = append(notices, domain.Notice{
			Level:   domain.NoticeWarning,
			Message: fmt.Sprintf("only the first %d of %d sentences were loaded", limit, len(sentences)),
		})
		sentences = sentences[:limit]
	}

	if client != nil && s.annotator != nil && assist.NeedsAnnotation(sentences) {
		notices = append(notices, s.annotator.AnnotateAll(ctx, client, sentences, input.Progress)...)
	}

	updated, err := s.store.Update(ctx, input.SessionID, func(cur domain.StudySession) (domain.StudySession, error) {
		return Reduce(cur, Load{
			FileName:  input.FileName,
			Format:    res.Format,
			Sentences: sentences,
			Notices:   notices,
		})
	})
	if err != nil {
		return View{}, err
	}

	s.log.InfoContext(ctx, "file loaded",
		slog.String("session_id", input.SessionID.String()),
		slog.String("file", input.FileName),
		slog.String("format", res.Format.String()),
		slog.Int("sentences", len(sentences)),
		slog.Int("notices", len(notices)))
	return s.view(updated), nil
}

// ClearFile removes the loaded sentence list.
func (s *Service) ClearFile(ctx context.Context, id uuid.UUID) (View, error) {
	return s.apply(ctx, id, Clear{})
}
