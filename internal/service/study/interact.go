package study

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Navigate moves the cursor one step or to either end.
func (s *Service) Navigate(ctx context.Context, input NavigateInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	return s.apply(ctx, input.SessionID, Navigate{Direction: input.Direction})
}

// GoTo moves the cursor to a zero-based index.
func (s *Service) GoTo(ctx context.Context, input GoToInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	return s.apply(ctx, input.SessionID, GoTo{Index: input.Index})
}

// ToggleShowAll switches between single and all-sentences view.
func (s *Service) ToggleShowAll(ctx context.Context, id uuid.UUID) (View, error) {
	return s.apply(ctx, id, ToggleShowAll{})
}

// ToggleEdit switches edit mode.
func (s *Service) ToggleEdit(ctx context.Context, id uuid.UUID) (View, error) {
	return s.apply(ctx, id, ToggleEdit{})
}

// SetFilter replaces the grammar category filter.
func (s *Service) SetFilter(ctx context.Context, input SetFilterInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	return s.apply(ctx, input.SessionID, SetFilter{Categories: input.Categories})
}

// SaveEdit stores an edited translation and grammar note.
func (s *Service) SaveEdit(ctx context.Context, input SaveEditInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	v, err := s.apply(ctx, input.SessionID, SaveEdit{
		Index:    input.Index,
		Japanese: input.Japanese,
		Grammar:  input.Grammar,
	})
	if err != nil {
		return View{}, err
	}
	s.log.InfoContext(ctx, "sentence saved",
		slog.String("session_id", input.SessionID.String()),
		slog.Int("index", input.Index))
	return v, nil
}

// SetCredential stores or clears the session's API key.
func (s *Service) SetCredential(ctx context.Context, input SetCredentialInput) (View, error) {
	if err := input.Validate(); err != nil {
		return View{}, err
	}
	v, err := s.apply(ctx, input.SessionID, SetCredential{APIKey: input.APIKey})
	if err != nil {
		return View{}, err
	}
	s.log.InfoContext(ctx, "credential updated",
		slog.String("session_id", input.SessionID.String()),
		slog.Bool("set", input.APIKey != ""))
	return v, nil
}

// DismissNotices clears the session's notices.
func (s *Service) DismissNotices(ctx context.Context, id uuid.UUID) (View, error) {
	return s.apply(ctx, id, DismissNotices{})
}
