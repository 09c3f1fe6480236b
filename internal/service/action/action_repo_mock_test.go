package action

import (
	"context"
	"sync"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

var _ actionRepo = &actionRepoMock{}

type actionRepoMock struct {
	CreateFunc  func(ctx context.Context, a *domain.Action) (*domain.Action, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Action, error)
	ListFunc    func(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)
	UpdateFunc  func(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			Action *domain.Action
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		List []struct {
			Ctx    context.Context
			Filter domain.ActionFilter
		}
		Update []struct {
			Ctx   context.Context
			ID    string
			Patch domain.ActionPatch
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *actionRepoMock) Create(ctx context.Context, a *domain.Action) (*domain.Action, error) {
	if mock.CreateFunc == nil {
		panic("actionRepoMock.CreateFunc: method is nil but actionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Action *domain.Action
	}{Ctx: ctx, Action: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *actionRepoMock) CreateCalls() []struct {
	Ctx    context.Context
	Action *domain.Action
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *actionRepoMock) GetByID(ctx context.Context, id string) (*domain.Action, error) {
	if mock.GetByIDFunc == nil {
		panic("actionRepoMock.GetByIDFunc: method is nil but actionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *actionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *actionRepoMock) List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	if mock.ListFunc == nil {
		panic("actionRepoMock.ListFunc: method is nil but actionRepo.List was just called")
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

func (mock *actionRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.ActionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *actionRepoMock) Update(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error) {
	if mock.UpdateFunc == nil {
		panic("actionRepoMock.UpdateFunc: method is nil but actionRepo.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    string
		Patch domain.ActionPatch
	}{Ctx: ctx, ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *actionRepoMock) UpdateCalls() []struct {
	Ctx   context.Context
	ID    string
	Patch domain.ActionPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
