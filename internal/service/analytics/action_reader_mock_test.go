package analytics

import (
	"context"
	"sync"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

var _ actionReader = &actionReaderMock{}

type actionReaderMock struct {
	ListFunc func(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.ActionFilter
		}
	}
	lockList sync.RWMutex
}

func (mock *actionReaderMock) List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	if mock.ListFunc == nil {
		panic("actionReaderMock.ListFunc: method is nil but actionReader.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.ActionFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *actionReaderMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.ActionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
