package request

import (
	"github.com/google/uuid"
	"sync"
)

var _ profileInvalidator = &profileInvalidatorMock{}

type profileInvalidatorMock struct {
	InvalidateFunc func(id uuid.UUID)

	calls struct {
		Invalidate []struct {
			ID uuid.UUID
		}
	}
	lockInvalidate sync.RWMutex
}

func (mock *profileInvalidatorMock) Invalidate(id uuid.UUID) {
	if mock.InvalidateFunc == nil {
		panic("profileInvalidatorMock.InvalidateFunc: method is nil but profileInvalidator.Invalidate was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{
		ID: id,
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	mock.InvalidateFunc(id)
}

func (mock *profileInvalidatorMock) InvalidateCalls() []struct {
	ID uuid.UUID
} {
	var calls []struct {
		ID uuid.UUID
	}
	mock.lockInvalidate.RLock()
	calls = mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
