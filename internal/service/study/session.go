package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Stats summarizes service state for health reporting.
type Stats struct {
	ActiveSessions int
	// MaxSessions is the session cap; zero means unlimited.
	MaxSessions   int
	LLMConfigured bool
	LLMProvider   string
}

// CreateSession starts an empty session.
func (s *Service) CreateSession(ctx context.Context) (View, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return View{}, fmt.Errorf("count sessions: %w", err)
	}
	if s.cfg.MaxSessions > 0 && n >= s.cfg.MaxSessions {
		return View{}, fmt.Errorf("create session: %w", domain.ErrLimitExceeded)
	}

	now := s.now()
	sess := domain.StudySession{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return View{}, fmt.Errorf("create session: %w", err)
	}

	s.log.InfoContext(ctx, "session created", slog.String("session_id", sess.ID.String()))
	return s.view(sess), nil
}

// GetView returns the current view of a session.
func (s *Service) GetView(ctx context.Context, id uuid.UUID) (View, error) {
	if id == uuid.Nil {
		return View{}, domain.NewValidationError("session_id", "required")
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(sess), nil
}

// DeleteSession ends a session and discards its sentences.
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("session_id", "required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "session deleted", slog.String("session_id", id.String()))
	return nil
}

// CleanupExpired removes sessions idle for longer than the configured TTL.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.SessionTTL)
	n, err := s.store.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "expired sessions removed", slog.Int("count", n))
	}
	return n, nil
}

// Stats reports the number of live sessions and whether a default credential exists.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count sessions: %w", err)
	}
	return Stats{
		ActiveSessions: n,
		MaxSessions:    s.cfg.MaxSessions,
		LLMConfigured:  s.newCompleter != nil && s.defaultKey != "",
		LLMProvider:    s.llmCfg.Provider,
	}, nil
}
