package study

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

// ---------------------------------------------------------------------------
// sessionStoreMock
// ---------------------------------------------------------------------------

var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	CreateFunc          func(ctx context.Context, s domain.StudySession) error
	GetFunc             func(ctx context.Context, id uuid.UUID) (domain.StudySession, error)
	UpdateFunc          func(ctx context.Context, id uuid.UUID, fn func(domain.StudySession) (domain.StudySession, error)) (domain.StudySession, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountFunc           func(ctx context.Context) (int, error)
	DeleteIdleSinceFunc func(ctx context.Context, cutoff time.Time) (int, error)

	calls struct {
		Create          []domain.StudySession
		Update          []uuid.UUID
		DeleteIdleSince []time.Time
	}
	lock sync.RWMutex
}

func (m *sessionStoreMock) Create(ctx context.Context, s domain.StudySession) error {
	if m.CreateFunc == nil {
		panic("sessionStoreMock.CreateFunc: method is nil but sessionStore.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, s)
	m.lock.Unlock()
	return m.CreateFunc(ctx, s)
}

func (m *sessionStoreMock) Get(ctx context.Context, id uuid.UUID) (domain.StudySession, error) {
	if m.GetFunc == nil {
		panic("sessionStoreMock.GetFunc: method is nil but sessionStore.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *sessionStoreMock) Update(ctx context.Context, id uuid.UUID, fn func(domain.StudySession) (domain.StudySession, error)) (domain.StudySession, error) {
	if m.UpdateFunc == nil {
		panic("sessionStoreMock.UpdateFunc: method is nil but sessionStore.Update was just called")
	}
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, id)
	m.lock.Unlock()
	return m.UpdateFunc(ctx, id, fn)
}

func (m *sessionStoreMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("sessionStoreMock.DeleteFunc: method is nil but sessionStore.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *sessionStoreMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		panic("sessionStoreMock.CountFunc: method is nil but sessionStore.Count was just called")
	}
	return m.CountFunc(ctx)
}

func (m *sessionStoreMock) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	if m.DeleteIdleSinceFunc == nil {
		panic("sessionStoreMock.DeleteIdleSinceFunc: method is nil but sessionStore.DeleteIdleSince was just called")
	}
	m.lock.Lock()
	m.calls.DeleteIdleSince = append(m.calls.DeleteIdleSince, cutoff)
	m.lock.Unlock()
	return m.DeleteIdleSinceFunc(ctx, cutoff)
}

func (m *sessionStoreMock) UpdateCalls() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Update
}

func (m *sessionStoreMock) CreateCalls() []domain.StudySession {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

// newMapStore returns a sessionStoreMock backed by a map, seeded with sessions.
func newMapStore(sessions ...domain.StudySession) *sessionStoreMock {
	var mu sync.Mutex
	data := make(map[uuid.UUID]domain.StudySession, len(sessions))
	for _, s := range sessions {
		data[s.ID] = s
	}
	notFound := func(id uuid.UUID) error { return fmt.Errorf("session %s: %w", id, domain.ErrNotFound) }

	return &sessionStoreMock{
		CreateFunc: func(_ context.Context, s domain.StudySession) error {
			mu.Lock()
			defer mu.Unlock()
			data[s.ID] = s
			return nil
		},
		GetFunc: func(_ context.Context, id uuid.UUID) (domain.StudySession, error) {
			mu.Lock()
			defer mu.Unlock()
			s, ok := data[id]
			if !ok {
				return domain.StudySession{}, notFound(id)
			}
			return s, nil
		},
		UpdateFunc: func(_ context.Context, id uuid.UUID, fn func(domain.StudySession) (domain.StudySession, error)) (domain.StudySession, error) {
			mu.Lock()
			defer mu.Unlock()
			s, ok := data[id]
			if !ok {
				return domain.StudySession{}, notFound(id)
			}
			next, err := fn(s)
			if err != nil {
				return domain.StudySession{}, err
			}
			data[id] = next
			return next, nil
		},
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := data[id]; !ok {
				return notFound(id)
			}
			delete(data, id)
			return nil
		},
		CountFunc: func(_ context.Context) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return len(data), nil
		},
		DeleteIdleSinceFunc: func(_ context.Context, cutoff time.Time) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			n := 0
			for id, s := range data {
				if s.UpdatedAt.Before(cutoff) {
					delete(data, id)
					n++
				}
			}
			return n, nil
		},
	}
}

// ---------------------------------------------------------------------------
// annotatorMock
// ---------------------------------------------------------------------------

var _ annotator = &annotatorMock{}

type annotatorMock struct {
	AnnotateAllFunc func(ctx context.Context, client completion.Completer, sentences []domain.Sentence, progress assist.ProgressFunc) []domain.Notice

	calls struct {
		AnnotateAll []struct {
			Client    completion.Completer
			Sentences []domain.Sentence
		}
	}
	lock sync.RWMutex
}

func (m *annotatorMock) AnnotateAll(ctx context.Context, client completion.Completer, sentences []domain.Sentence, progress assist.ProgressFunc) []domain.Notice {
	if m.AnnotateAllFunc == nil {
		panic("annotatorMock.AnnotateAllFunc: method is nil but annotator.AnnotateAll was just called")
	}
	m.lock.Lock()
	m.calls.AnnotateAll = append(m.calls.AnnotateAll, struct {
		Client    completion.Completer
		Sentences []domain.Sentence
	}{client, sentences})
	m.lock.Unlock()
	return m.AnnotateAllFunc(ctx, client, sentences, progress)
}

func (m *annotatorMock) AnnotateAllCalls() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.calls.AnnotateAll)
}

// ---------------------------------------------------------------------------
// completerStub
// ---------------------------------------------------------------------------

type completerStub struct {
	reply string
	err   error
}

func (c completerStub) Complete(context.Context, completion.Request) (string, error) {
	return c.reply, c.err
}
