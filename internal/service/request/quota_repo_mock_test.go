package request

import (
	"context"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ quotaRepo = &quotaRepoMock{}

type quotaRepoMock struct {
	ConsumeFunc func(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, error)

	calls struct {
		Consume []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Day    time.Time
			Limit  int
		}
	}
	lockConsume sync.RWMutex
}

func (mock *quotaRepoMock) Consume(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, error) {
	if mock.ConsumeFunc == nil {
		panic("quotaRepoMock.ConsumeFunc: method is nil but quotaRepo.Consume was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Day    time.Time
		Limit  int
	}{
		Ctx:    ctx,
		UserID: userID,
		Day:    day,
		Limit:  limit,
	}
	mock.lockConsume.Lock()
	mock.calls.Consume = append(mock.calls.Consume, callInfo)
	mock.lockConsume.Unlock()
	return mock.ConsumeFunc(ctx, userID, day, limit)
}

func (mock *quotaRepoMock) ConsumeCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Day    time.Time
	Limit  int
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Day    time.Time
		Limit  int
	}
	mock.lockConsume.RLock()
	calls = mock.calls.Consume
	mock.lockConsume.RUnlock()
	return calls
}
