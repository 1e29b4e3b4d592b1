package social

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
)

var _ requestRepo = &requestRepoMock{}

type requestRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListSavedByFunc func(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.Request, int, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListSavedBy []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockGetByID     sync.RWMutex
	lockListSavedBy sync.RWMutex
}

func (mock *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	if mock.GetByIDFunc == nil {
		panic("requestRepoMock.GetByIDFunc: method is nil but requestRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *requestRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *requestRepoMock) ListSavedBy(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.Request, int, error) {
	if mock.ListSavedByFunc == nil {
		panic("requestRepoMock.ListSavedByFunc: method is nil but requestRepo.ListSavedBy was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockListSavedBy.Lock()
	mock.calls.ListSavedBy = append(mock.calls.ListSavedBy, callInfo)
	mock.lockListSavedBy.Unlock()
	return mock.ListSavedByFunc(ctx, userID, limit, offset)
}

func (mock *requestRepoMock) ListSavedByCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}
	mock.lockListSavedBy.RLock()
	calls = mock.calls.ListSavedBy
	mock.lockListSavedBy.RUnlock()
	return calls
}
