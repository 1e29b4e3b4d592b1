package points

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
)

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	AppendFunc     func(ctx context.Context, e *domain.LedgerEntry) error
	ListByUserFunc func(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.LedgerEntry, int, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   *domain.LedgerEntry
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockAppend     sync.RWMutex
	lockListByUser sync.RWMutex
}

func (mock *ledgerRepoMock) Append(ctx context.Context, e *domain.LedgerEntry) error {
	if mock.AppendFunc == nil {
		panic("ledgerRepoMock.AppendFunc: method is nil but ledgerRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.LedgerEntry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *ledgerRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   *domain.LedgerEntry
} {
	var calls []struct {
		Ctx context.Context
		E   *domain.LedgerEntry
	}
	mock.lockAppend.RLock()
	calls = mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.LedgerEntry, int, error) {
	if mock.ListByUserFunc == nil {
		panic("ledgerRepoMock.ListByUserFunc: method is nil but ledgerRepo.ListByUser was just called")
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
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID, limit, offset)
}

func (mock *ledgerRepoMock) ListByUserCalls() []struct {
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
	mock.lockListByUser.RLock()
	calls = mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}
