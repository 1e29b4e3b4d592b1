package request

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
	"time"
)

var _ responseRepo = &responseRepoMock{}

type responseRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Response, error)
	ListByRequestFunc func(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error)
	HasDecisionFunc   func(ctx context.Context, requestID uuid.UUID) (bool, error)
	CreateFunc        func(ctx context.Context, resp *domain.Response) (*domain.Response, error)
	SetRatingFunc     func(ctx context.Context, id uuid.UUID, rating domain.Rating, ratedAt time.Time) error
	ShortenExpiryFunc func(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByRequest []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		HasDecision []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		Create []struct {
			Ctx  context.Context
			Resp *domain.Response
		}
		SetRating []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Rating  domain.Rating
			RatedAt time.Time
		}
		ShortenExpiry []struct {
			Ctx       context.Context
			RequestID uuid.UUID
			Cutoff    time.Time
		}
	}
	lockGetByID       sync.RWMutex
	lockListByRequest sync.RWMutex
	lockHasDecision   sync.RWMutex
	lockCreate        sync.RWMutex
	lockSetRating     sync.RWMutex
	lockShortenExpiry sync.RWMutex
}

func (mock *responseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Response, error) {
	if mock.GetByIDFunc == nil {
		panic("responseRepoMock.GetByIDFunc: method is nil but responseRepo.GetByID was just called")
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

func (mock *responseRepoMock) GetByIDCalls() []struct {
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

func (mock *responseRepoMock) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error) {
	if mock.ListByRequestFunc == nil {
		panic("responseRepoMock.ListByRequestFunc: method is nil but responseRepo.ListByRequest was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockListByRequest.Lock()
	mock.calls.ListByRequest = append(mock.calls.ListByRequest, callInfo)
	mock.lockListByRequest.Unlock()
	return mock.ListByRequestFunc(ctx, requestID)
}

func (mock *responseRepoMock) ListByRequestCalls() []struct {
	Ctx       context.Context
	RequestID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockListByRequest.RLock()
	calls = mock.calls.ListByRequest
	mock.lockListByRequest.RUnlock()
	return calls
}

func (mock *responseRepoMock) HasDecision(ctx context.Context, requestID uuid.UUID) (bool, error) {
	if mock.HasDecisionFunc == nil {
		panic("responseRepoMock.HasDecisionFunc: method is nil but responseRepo.HasDecision was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockHasDecision.Lock()
	mock.calls.HasDecision = append(mock.calls.HasDecision, callInfo)
	mock.lockHasDecision.Unlock()
	return mock.HasDecisionFunc(ctx, requestID)
}

func (mock *responseRepoMock) HasDecisionCalls() []struct {
	Ctx       context.Context
	RequestID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockHasDecision.RLock()
	calls = mock.calls.HasDecision
	mock.lockHasDecision.RUnlock()
	return calls
}

func (mock *responseRepoMock) Create(ctx context.Context, resp *domain.Response) (*domain.Response, error) {
	if mock.CreateFunc == nil {
		panic("responseRepoMock.CreateFunc: method is nil but responseRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Resp *domain.Response
	}{
		Ctx:  ctx,
		Resp: resp,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, resp)
}

func (mock *responseRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Resp *domain.Response
} {
	var calls []struct {
		Ctx  context.Context
		Resp *domain.Response
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *responseRepoMock) SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating, ratedAt time.Time) error {
	if mock.SetRatingFunc == nil {
		panic("responseRepoMock.SetRatingFunc: method is nil but responseRepo.SetRating was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Rating  domain.Rating
		RatedAt time.Time
	}{
		Ctx:     ctx,
		ID:      id,
		Rating:  rating,
		RatedAt: ratedAt,
	}
	mock.lockSetRating.Lock()
	mock.calls.SetRating = append(mock.calls.SetRating, callInfo)
	mock.lockSetRating.Unlock()
	return mock.SetRatingFunc(ctx, id, rating, ratedAt)
}

func (mock *responseRepoMock) SetRatingCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Rating  domain.Rating
	RatedAt time.Time
} {
	var calls []struct {
		Ctx     context.Context
		ID      uuid.UUID
		Rating  domain.Rating
		RatedAt time.Time
	}
	mock.lockSetRating.RLock()
	calls = mock.calls.SetRating
	mock.lockSetRating.RUnlock()
	return calls
}

func (mock *responseRepoMock) ShortenExpiry(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int, error) {
	if mock.ShortenExpiryFunc == nil {
		panic("responseRepoMock.ShortenExpiryFunc: method is nil but responseRepo.ShortenExpiry was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
		Cutoff    time.Time
	}{
		Ctx:       ctx,
		RequestID: requestID,
		Cutoff:    cutoff,
	}
	mock.lockShortenExpiry.Lock()
	mock.calls.ShortenExpiry = append(mock.calls.ShortenExpiry, callInfo)
	mock.lockShortenExpiry.Unlock()
	return mock.ShortenExpiryFunc(ctx, requestID, cutoff)
}

func (mock *responseRepoMock) ShortenExpiryCalls() []struct {
	Ctx       context.Context
	RequestID uuid.UUID
	Cutoff    time.Time
} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
		Cutoff    time.Time
	}
	mock.lockShortenExpiry.RLock()
	calls = mock.calls.ShortenExpiry
	mock.lockShortenExpiry.RUnlock()
	return calls
}
