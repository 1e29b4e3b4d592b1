package social

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ reactionRepo = &reactionRepoMock{}

type reactionRepoMock struct {
	ToggleLikeFunc func(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (bool, error)
	ToggleSaveFunc func(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (bool, error)

	calls struct {
		ToggleLike []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			RequestID uuid.UUID
		}
		ToggleSave []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			RequestID uuid.UUID
		}
	}
	lockToggleLike sync.RWMutex
	lockToggleSave sync.RWMutex
}

func (mock *reactionRepoMock) ToggleLike(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (bool, error) {
	if mock.ToggleLikeFunc == nil {
		panic("reactionRepoMock.ToggleLikeFunc: method is nil but reactionRepo.ToggleLike was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		UserID:    userID,
		RequestID: requestID,
	}
	mock.lockToggleLike.Lock()
	mock.calls.ToggleLike = append(mock.calls.ToggleLike, callInfo)
	mock.lockToggleLike.Unlock()
	return mock.ToggleLikeFunc(ctx, userID, requestID)
}

func (mock *reactionRepoMock) ToggleLikeCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	RequestID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		RequestID uuid.UUID
	}
	mock.lockToggleLike.RLock()
	calls = mock.calls.ToggleLike
	mock.lockToggleLike.RUnlock()
	return calls
}

func (mock *reactionRepoMock) ToggleSave(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (bool, error) {
	if mock.ToggleSaveFunc == nil {
		panic("reactionRepoMock.ToggleSaveFunc: method is nil but reactionRepo.ToggleSave was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		UserID:    userID,
		RequestID: requestID,
	}
	mock.lockToggleSave.Lock()
	mock.calls.ToggleSave = append(mock.calls.ToggleSave, callInfo)
	mock.lockToggleSave.Unlock()
	return mock.ToggleSaveFunc(ctx, userID, requestID)
}

func (mock *reactionRepoMock) ToggleSaveCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	RequestID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		RequestID uuid.UUID
	}
	mock.lockToggleSave.RLock()
	calls = mock.calls.ToggleSave
	mock.lockToggleSave.RUnlock()
	return calls
}
