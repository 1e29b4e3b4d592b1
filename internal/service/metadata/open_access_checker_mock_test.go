package metadata

import (
	"context"
	"github.com/korima-app/korima-backend/internal/provider"
	"sync"
)

var _ openAccessChecker = &openAccessCheckerMock{}

type openAccessCheckerMock struct {
	CheckOpenAccessFunc func(ctx context.Context, doi string) (*provider.OpenAccess, error)

	calls struct {
		CheckOpenAccess []struct {
			Ctx context.Context
			DOI string
		}
	}
	lockCheckOpenAccess sync.RWMutex
}

func (mock *openAccessCheckerMock) CheckOpenAccess(ctx context.Context, doi string) (*provider.OpenAccess, error) {
	if mock.CheckOpenAccessFunc == nil {
		panic("openAccessCheckerMock.CheckOpenAccessFunc: method is nil but openAccessChecker.CheckOpenAccess was just called")
	}
	callInfo := struct {
		Ctx context.Context
		DOI string
	}{
		Ctx: ctx,
		DOI: doi,
	}
	mock.lockCheckOpenAccess.Lock()
	mock.calls.CheckOpenAccess = append(mock.calls.CheckOpenAccess, callInfo)
	mock.lockCheckOpenAccess.Unlock()
	return mock.CheckOpenAccessFunc(ctx, doi)
}

func (mock *openAccessCheckerMock) CheckOpenAccessCalls() []struct {
	Ctx context.Context
	DOI string
} {
	var calls []struct {
		Ctx context.Context
		DOI string
	}
	mock.lockCheckOpenAccess.RLock()
	calls = mock.calls.CheckOpenAccess
	mock.lockCheckOpenAccess.RUnlock()
	return calls
}
