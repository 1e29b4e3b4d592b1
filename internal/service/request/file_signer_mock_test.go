package request

import (
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/auth"
	"sync"
	"time"
)

var _ fileSigner = &fileSignerMock{}

type fileSignerMock struct {
	SignFileTokenFunc  func(responseID uuid.UUID, key string, expiresAt time.Time) (string, error)
	ParseFileTokenFunc func(token string) (auth.FileGrant, error)

	calls struct {
		SignFileToken []struct {
			ResponseID uuid.UUID
			Key        string
			ExpiresAt  time.Time
		}
		ParseFileToken []struct {
			Token string
		}
	}
	lockSignFileToken  sync.RWMutex
	lockParseFileToken sync.RWMutex
}

func (mock *fileSignerMock) SignFileToken(responseID uuid.UUID, key string, expiresAt time.Time) (string, error) {
	if mock.SignFileTokenFunc == nil {
		panic("fileSignerMock.SignFileTokenFunc: method is nil but fileSigner.SignFileToken was just called")
	}
	callInfo := struct {
		ResponseID uuid.UUID
		Key        string
		ExpiresAt  time.Time
	}{
		ResponseID: responseID,
		Key:        key,
		ExpiresAt:  expiresAt,
	}
	mock.lockSignFileToken.Lock()
	mock.calls.SignFileToken = append(mock.calls.SignFileToken, callInfo)
	mock.lockSignFileToken.Unlock()
	return mock.SignFileTokenFunc(responseID, key, expiresAt)
}

func (mock *fileSignerMock) SignFileTokenCalls() []struct {
	ResponseID uuid.UUID
	Key        string
	ExpiresAt  time.Time
} {
	var calls []struct {
		ResponseID uuid.UUID
		Key        string
		ExpiresAt  time.Time
	}
	mock.lockSignFileToken.RLock()
	calls = mock.calls.SignFileToken
	mock.lockSignFileToken.RUnlock()
	return calls
}

func (mock *fileSignerMock) ParseFileToken(token string) (auth.FileGrant, error) {
	if mock.ParseFileTokenFunc == nil {
		panic("fileSignerMock.ParseFileTokenFunc: method is nil but fileSigner.ParseFileToken was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockParseFileToken.Lock()
	mock.calls.ParseFileToken = append(mock.calls.ParseFileToken, callInfo)
	mock.lockParseFileToken.Unlock()
	return mock.ParseFileTokenFunc(token)
}

func (mock *fileSignerMock) ParseFileTokenCalls() []struct {
	Token string
} {
	var calls []struct {
		Token string
	}
	mock.lockParseFileToken.RLock()
	calls = mock.calls.ParseFileToken
	mock.lockParseFileToken.RUnlock()
	return calls
}
