package assist

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-study/internal/completion"
)

var _ completion.Completer = &completerMock{}

type completerMock struct {
	CompleteFunc func(ctx context.Context, req completion.Request) (string, error)

	calls struct {
		Complete []struct {
			Ctx context.Context
			Req completion.Request
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, req completion.Request) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but Completer.Complete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req completion.Request
	}{Ctx: ctx, Req: req}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, req)
}

func (mock *completerMock) CompleteCalls() []struct {
	Ctx context.Context
	Req completion.Request
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
