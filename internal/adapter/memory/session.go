// Package memory implements the study session repository in process memory.
// Sessions live only as long as the process.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// SessionRepo stores study sessions keyed by ID.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.StudySession
	now      func() time.Time
}

// NewSessionRepo creates an empty repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[uuid.UUID]domain.StudySession),
		now:      time.Now,
	}
}

// Create inserts a new session. An existing ID is rejected.
func (r *SessionRepo) Create(ctx context.Context, s domain.StudySession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("session %s: %w", s.ID, domain.ErrAlreadyExists)
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = r.now()
	}
	r.sessions[s.ID] = clone(s)
	return nil
}

// Get returns a copy of the session.
func (r *SessionRepo) Get(ctx context.Context, id uuid.UUID) (domain.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return domain.StudySession{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.StudySession{}, notFound(id)
	}
	return clone(s), nil
}

// Update runs fn on the current session under the repository lock and
// stores the result. When fn fails nothing is written.
func (r *SessionRepo) Update(ctx context.Context, id uuid.UUID, fn func(domain.StudySession) (domain.StudySession, error)) (domain.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return domain.StudySession{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.sessions[id]
	if !ok {
		return domain.StudySession{}, notFound(id)
	}
	next, err := fn(clone(cur))
	if err != nil {
		return domain.StudySession{}, err
	}
	next.ID = id
	next.UpdatedAt = r.now()
	r.sessions[id] = clone(next)
	return next, nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return notFound(id)
	}
	delete(r.sessions, id)
	return nil
}

// Count returns the number of stored sessions.
func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), nil
}

// DeleteIdleSince removes sessions not updated since cutoff and returns how many were removed.
func (r *SessionRepo) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
}

// clone copies the slices so callers never share backing arrays with the repository.
func clone(s domain.StudySession) domain.StudySession {
	s.Sentences = slices.Clone(s.Sentences)
	s.Filter = slices.Clone(s.Filter)
	s.Notices = slices.Clone(s.Notices)
	return s
}
