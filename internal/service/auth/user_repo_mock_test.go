package auth

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetCredentialsFunc func(ctx context.Context, email string) (*domain.User, string, error)
	CreateFunc         func(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetCredentials []struct {
			Ctx   context.Context
			Email string
		}
		Create []struct {
			Ctx          context.Context
			User         *domain.User
			PasswordHash string
		}
	}
	lockGetByID        sync.RWMutex
	lockGetCredentials sync.RWMutex
	lockCreate         sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
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

func (mock *userRepoMock) GetByIDCalls() []struct {
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

func (mock *userRepoMock) GetCredentials(ctx context.Context, email string) (*domain.User, string, error) {
	if mock.GetCredentialsFunc == nil {
		panic("userRepoMock.GetCredentialsFunc: method is nil but userRepo.GetCredentials was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{
		Ctx:   ctx,
		Email: email,
	}
	mock.lockGetCredentials.Lock()
	mock.calls.GetCredentials = append(mock.calls.GetCredentials, callInfo)
	mock.lockGetCredentials.Unlock()
	return mock.GetCredentialsFunc(ctx, email)
}

func (mock *userRepoMock) GetCredentialsCalls() []struct {
	Ctx   context.Context
	Email string
} {
	var calls []struct {
		Ctx   context.Context
		Email string
	}
	mock.lockGetCredentials.RLock()
	calls = mock.calls.GetCredentials
	mock.lockGetCredentials.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		User         *domain.User
		PasswordHash string
	}{
		Ctx:          ctx,
		User:         user,
		PasswordHash: passwordHash,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, user, passwordHash)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx          context.Context
	User         *domain.User
	PasswordHash string
} {
	var calls []struct {
		Ctx          context.Context
		User         *domain.User
		PasswordHash string
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
