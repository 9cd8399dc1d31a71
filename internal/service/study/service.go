// Package study implements the session controller: sessions hold a loaded
// sentence list plus view flags, and every interaction is a pure Reduce step
// committed through the session store.
package study

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/grammar"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sessionStore interface {
	Create(ctx context.Context, s domain.StudySession) error
	Get(ctx context.Context, id uuid.UUID) (domain.StudySession, error)
	// Update applies fn atomically for the session. A non-nil error from fn
	// leaves the stored session untouched.
	Update(ctx context.Context, id uuid.UUID, fn func(domain.StudySession) (domain.StudySession, error)) (domain.StudySession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}

type annotator interface {
	AnnotateAll(ctx context.Context, client completion.Completer, sentences []domain.Sentence, progress assist.ProgressFunc) []domain.Notice
}

// CompleterFactory builds a completion client for an API key.
type CompleterFactory func(apiKey string) (completion.Completer, error)

// Service owns study sessions.
type Service struct {
	log          *slog.Logger
	store        sessionStore
	annotator    annotator
	newCompleter CompleterFactory
	llmCfg       config.LLMConfig
	cfg          config.StudyConfig
	defaultKey   string
	highlighter  grammar.Highlighter
	now          func() time.Time
}

// NewService creates a new study service. newCompleter may be nil, which
// disables every completion-backed feature.
func NewService(
	log *slog.Logger,
	store sessionStore,
	annotator annotator,
	newCompleter CompleterFactory,
	llmCfg config.LLMConfig,
	cfg config.StudyConfig,
) *Service {
	return &Service{
		log:          log.With("service", "study"),
		store:        store,
		annotator:    annotator,
		newCompleter: newCompleter,
		llmCfg:       llmCfg,
		cfg:          cfg,
		defaultKey:   llmCfg.ResolveAPIKey(),
		highlighter:  grammar.NewHTMLHighlighter(),
		now:          time.Now,
	}
}

// view renders s for API consumers.
func (s *Service) view(sess domain.StudySession) View {
	v := BuildView(sess, s.highlighter)
	v.LLMEnabled = s.newCompleter != nil && (sess.APIKey != "" || s.defaultKey != "")
	return v
}

// completerFor returns a client for the session's key or the configured
// default. A nil client means completion is disabled; construction failures
// are reported as notices.
func (s *Service) completerFor(ctx context.Context, sessionKey string) (completion.Completer, []domain.Notice) {
	if s.newCompleter == nil {
		return nil, nil
	}
	key := sessionKey
	if key == "" {
		key = s.defaultKey
	}
	if key == "" {
		return nil, nil
	}

	c, err := s.newCompleter(key)
	if errors.Is(err, completion.ErrNoCredential) {
		return nil, nil
	}
	if err != nil {
		s.log.WarnContext(ctx, "completion client unavailable", slog.String("error", err.Error()))
		return nil, []domain.Notice{{
			Level:   domain.NoticeError,
			Message: "completion service unavailable: " + err.Error(),
		}}
	}
	return c, nil
}

// apply commits a single action and returns the resulting view.
func (s *Service) apply(ctx context.Context, id uuid.UUID, a Action) (View, error) {
	if id == uuid.Nil {
		return View{}, domain.NewValidationError("session_id", "required")
	}
	sess, err := s.store.Update(ctx, id, func(cur domain.StudySession) (domain.StudySession, error) {
		return Reduce(cur, a)
	})
	if err != nil {
		return View{}, err
	}
	return s.view(sess), nil
}
