package social

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
)

var _ requestEnricher = &requestEnricherMock{}

type requestEnricherMock struct {
	EnrichFunc func(ctx context.Context, viewer uuid.UUID, reqs []domain.Request) ([]domain.RequestView, error)

	calls struct {
		Enrich []struct {
			Ctx    context.Context
			Viewer uuid.UUID
			Reqs   []domain.Request
		}
	}
	lockEnrich sync.RWMutex
}

func (mock *requestEnricherMock) Enrich(ctx context.Context, viewer uuid.UUID, reqs []domain.Request) ([]domain.RequestView, error) {
	if mock.EnrichFunc == nil {
		panic("requestEnricherMock.EnrichFunc: method is nil but requestEnricher.Enrich was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Viewer uuid.UUID
		Reqs   []domain.Request
	}{
		Ctx:    ctx,
		Viewer: viewer,
		Reqs:   reqs,
	}
	mock.lockEnrich.Lock()
	mock.calls.Enrich = append(mock.calls.Enrich, callInfo)
	mock.lockEnrich.Unlock()
	return mock.EnrichFunc(ctx, viewer, reqs)
}

func (mock *requestEnricherMock) EnrichCalls() []struct {
	Ctx    context.Context
	Viewer uuid.UUID
	Reqs   []domain.Request
} {
	var calls []struct {
		Ctx    context.Context
		Viewer uuid.UUID
		Reqs   []domain.Request
	}
	mock.lockEnrich.RLock()
	calls = mock.calls.Enrich
	mock.lockEnrich.RUnlock()
	return calls
}
