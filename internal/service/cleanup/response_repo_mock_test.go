package cleanup

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
	"time"
)

var _ responseRepo = &responseRepoMock{}

type responseRepoMock struct {
	ListExpiredFilesFunc func(ctx context.Context, now time.Time, limit int) ([]domain.ExpiredFile, error)
	ClearFileFunc        func(ctx context.Context, id uuid.UUID) error

	calls struct {
		ListExpiredFiles []struct {
			Ctx   context.Context
			Now   time.Time
			Limit int
		}
		ClearFile []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockListExpiredFiles sync.RWMutex
	lockClearFile        sync.RWMutex
}

func (mock *responseRepoMock) ListExpiredFiles(ctx context.Context, now time.Time, limit int) ([]domain.ExpiredFile, error) {
	if mock.ListExpiredFilesFunc == nil {
		panic("responseRepoMock.ListExpiredFilesFunc: method is nil but responseRepo.ListExpiredFiles was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}{
		Ctx:   ctx,
		Now:   now,
		Limit: limit,
	}
	mock.lockListExpiredFiles.Lock()
	mock.calls.ListExpiredFiles = append(mock.calls.ListExpiredFiles, callInfo)
	mock.lockListExpiredFiles.Unlock()
	return mock.ListExpiredFilesFunc(ctx, now, limit)
}

func (mock *responseRepoMock) ListExpiredFilesCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}
	mock.lockListExpiredFiles.RLock()
	calls = mock.calls.ListExpiredFiles
	mock.lockListExpiredFiles.RUnlock()
	return calls
}

func (mock *responseRepoMock) ClearFile(ctx context.Context, id uuid.UUID) error {
	if mock.ClearFileFunc == nil {
		panic("responseRepoMock.ClearFileFunc: method is nil but responseRepo.ClearFile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockClearFile.Lock()
	mock.calls.ClearFile = append(mock.calls.ClearFile, callInfo)
	mock.lockClearFile.Unlock()
	return mock.ClearFileFunc(ctx, id)
}

func (mock *responseRepoMock) ClearFileCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockClearFile.RLock()
	calls = mock.calls.ClearFile
	mock.lockClearFile.RUnlock()
	return calls
}
