package admin

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	SetRoleFunc func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	ListFunc    func(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error)

	calls struct {
		SetRole []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Role domain.UserRole
		}
		List []struct {
			Ctx context.Context
			F   domain.UserFilter
		}
	}
	lockSetRole sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *userRepoMock) SetRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.SetRoleFunc == nil {
		panic("userRepoMock.SetRoleFunc: method is nil but userRepo.SetRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}{
		Ctx:  ctx,
		ID:   id,
		Role: role,
	}
	mock.lockSetRole.Lock()
	mock.calls.SetRole = append(mock.calls.SetRole, callInfo)
	mock.lockSetRole.Unlock()
	return mock.SetRoleFunc(ctx, id, role)
}

func (mock *userRepoMock) SetRoleCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Role domain.UserRole
} {
	var calls []struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}
	mock.lockSetRole.RLock()
	calls = mock.calls.SetRole
	mock.lockSetRole.RUnlock()
	return calls
}

func (mock *userRepoMock) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.UserFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *userRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.UserFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.UserFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
