package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/service/request"
	"io"
	"sync"
)

var _ requestService = &requestServiceMock{}

type requestServiceMock struct {
	CreateRequestFunc       func(ctx context.Context, input request.CreateRequestInput) (*domain.Request, error)
	GetRequestFunc          func(ctx context.Context, id uuid.UUID) (*domain.RequestView, error)
	ListRequestsFunc        func(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error)
	ListMyRequestsFunc      func(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error)
	DeleteRequestFunc       func(ctx context.Context, id uuid.UUID) error
	SubmitResponseFunc      func(ctx context.Context, requestID uuid.UUID, input request.SubmitResponseInput) (*domain.Response, error)
	ListResponsesFunc       func(ctx context.Context, requestID uuid.UUID) ([]domain.ResponseView, error)
	SelectBestAnswerFunc    func(ctx context.Context, requestID uuid.UUID, responseID uuid.UUID) (*request.DecisionResult, error)
	MarkIncorrectFunc       func(ctx context.Context, requestID uuid.UUID, responseID uuid.UUID) (*request.DecisionResult, error)
	ResolveResponseFileFunc func(ctx context.Context, responseID uuid.UUID) (*request.FileLink, error)
	OpenFileFunc            func(ctx context.Context, token string) (io.ReadCloser, string, error)

	calls struct {
		CreateRequest []struct {
			Ctx   context.Context
			Input request.CreateRequestInput
		}
		GetRequest []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListRequests []struct {
			Ctx   context.Context
			Input request.ListRequestsInput
		}
		ListMyRequests []struct {
			Ctx   context.Context
			Input request.ListRequestsInput
		}
		DeleteRequest []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SubmitResponse []struct {
			Ctx       context.Context
			RequestID uuid.UUID
			Input     request.SubmitResponseInput
		}
		ListResponses []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		SelectBestAnswer []struct {
			Ctx        context.Context
			RequestID  uuid.UUID
			ResponseID uuid.UUID
		}
		MarkIncorrect []struct {
			Ctx        context.Context
			RequestID  uuid.UUID
			ResponseID uuid.UUID
		}
		ResolveResponseFile []struct {
			Ctx        context.Context
			ResponseID uuid.UUID
		}
		OpenFile []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockCreateRequest       sync.RWMutex
	lockGetRequest          sync.RWMutex
	lockListRequests        sync.RWMutex
	lockListMyRequests      sync.RWMutex
	lockDeleteRequest       sync.RWMutex
	lockSubmitResponse      sync.RWMutex
	lockListResponses       sync.RWMutex
	lockSelectBestAnswer    sync.RWMutex
	lockMarkIncorrect       sync.RWMutex
	lockResolveResponseFile sync.RWMutex
	lockOpenFile            sync.RWMutex
}

func (mock *requestServiceMock) CreateRequest(ctx context.Context, input request.CreateRequestInput) (*domain.Request, error) {
	if mock.CreateRequestFunc == nil {
		panic("requestServiceMock.CreateRequestFunc: method is nil but requestService.CreateRequest was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input request.CreateRequestInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateRequest.Lock()
	mock.calls.CreateRequest = append(mock.calls.CreateRequest, callInfo)
	mock.lockCreateRequest.Unlock()
	return mock.CreateRequestFunc(ctx, input)
}

func (mock *requestServiceMock) CreateRequestCalls() []struct {
	Ctx   context.Context
	Input request.CreateRequestInput
} {
	var calls []struct {
		Ctx   context.Context
		Input request.CreateRequestInput
	}
	mock.lockCreateRequest.RLock()
	calls = mock.calls.CreateRequest
	mock.lockCreateRequest.RUnlock()
	return calls
}

func (mock *requestServiceMock) GetRequest(ctx context.Context, id uuid.UUID) (*domain.RequestView, error) {
	if mock.GetRequestFunc == nil {
		panic("requestServiceMock.GetRequestFunc: method is nil but requestService.GetRequest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetRequest.Lock()
	mock.calls.GetRequest = append(mock.calls.GetRequest, callInfo)
	mock.lockGetRequest.Unlock()
	return mock.GetRequestFunc(ctx, id)
}

func (mock *requestServiceMock) GetRequestCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetRequest.RLock()
	calls = mock.calls.GetRequest
	mock.lockGetRequest.RUnlock()
	return calls
}

func (mock *requestServiceMock) ListRequests(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error) {
	if mock.ListRequestsFunc == nil {
		panic("requestServiceMock.ListRequestsFunc: method is nil but requestService.ListRequests was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input request.ListRequestsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListRequests.Lock()
	mock.calls.ListRequests = append(mock.calls.ListRequests, callInfo)
	mock.lockListRequests.Unlock()
	return mock.ListRequestsFunc(ctx, input)
}

func (mock *requestServiceMock) ListRequestsCalls() []struct {
	Ctx   context.Context
	Input request.ListRequestsInput
} {
	var calls []struct {
		Ctx   context.Context
		Input request.ListRequestsInput
	}
	mock.lockListRequests.RLock()
	calls = mock.calls.ListRequests
	mock.lockListRequests.RUnlock()
	return calls
}

func (mock *requestServiceMock) ListMyRequests(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error) {
	if mock.ListMyRequestsFunc == nil {
		panic("requestServiceMock.ListMyRequestsFunc: method is nil but requestService.ListMyRequests was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input request.ListRequestsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListMyRequests.Lock()
	mock.calls.ListMyRequests = append(mock.calls.ListMyRequests, callInfo)
	mock.lockListMyRequests.Unlock()
	return mock.ListMyRequestsFunc(ctx, input)
}

func (mock *requestServiceMock) ListMyRequestsCalls() []struct {
	Ctx   context.Context
	Input request.ListRequestsInput
} {
	var calls []struct {
		Ctx   context.Context
		Input request.ListRequestsInput
	}
	mock.lockListMyRequests.RLock()
	calls = mock.calls.ListMyRequests
	mock.lockListMyRequests.RUnlock()
	return calls
}

func (mock *requestServiceMock) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteRequestFunc == nil {
		panic("requestServiceMock.DeleteRequestFunc: method is nil but requestService.DeleteRequest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDeleteRequest.Lock()
	mock.calls.DeleteRequest = append(mock.calls.DeleteRequest, callInfo)
	mock.lockDeleteRequest.Unlock()
	return mock.DeleteRequestFunc(ctx, id)
}

func (mock *requestServiceMock) DeleteRequestCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockDeleteRequest.RLock()
	calls = mock.calls.DeleteRequest
	mock.lockDeleteRequest.RUnlock()
	return calls
}

func (mock *requestServiceMock) SubmitResponse(ctx context.Context, requestID uuid.UUID, input request.SubmitResponseInput) (*domain.Response, error) {
	if mock.SubmitResponseFunc == nil {
		panic("requestServiceMock.SubmitResponseFunc: method is nil but requestService.SubmitResponse was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
		Input     request.SubmitResponseInput
	}{
		Ctx:       ctx,
		RequestID: requestID,
		Input:     input,
	}
	mock.lockSubmitResponse.Lock()
	mock.calls.SubmitResponse = append(mock.calls.SubmitResponse, callInfo)
	mock.lockSubmitResponse.Unlock()
	return mock.SubmitResponseFunc(ctx, requestID, input)
}

func (mock *requestServiceMock) SubmitResponseCalls() []struct {
	Ctx       context.Context
	RequestID uuid.UUID
	Input     request.SubmitResponseInput
} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
		Input     request.SubmitResponseInput
	}
	mock.lockSubmitResponse.RLock()
	calls = mock.calls.SubmitResponse
	mock.lockSubmitResponse.RUnlock()
	return calls
}

func (mock *requestServiceMock) ListResponses(ctx context.Context, requestID uuid.UUID) ([]domain.ResponseView, error) {
	if mock.ListResponsesFunc == nil {
		panic("requestServiceMock.ListResponsesFunc: method is nil but requestService.ListResponses was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockListResponses.Lock()
	mock.calls.ListResponses = append(mock.calls.ListResponses, callInfo)
	mock.lockListResponses.Unlock()
	return mock.ListResponsesFunc(ctx, requestID)
}

func (mock *requestServiceMock) ListResponsesCalls() []struct {
	Ctx       context.Context
	RequestID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockListResponses.RLock()
	calls = mock.calls.ListResponses
	mock.lockListResponses.RUnlock()
	return calls
}

func (mock *requestServiceMock) SelectBestAnswer(ctx context.Context, requestID uuid.UUID, responseID uuid.UUID) (*request.DecisionResult, error) {
	if mock.SelectBestAnswerFunc == nil {
		panic("requestServiceMock.SelectBestAnswerFunc: method is nil but requestService.SelectBestAnswer was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RequestID  uuid.UUID
		ResponseID uuid.UUID
	}{
		Ctx:        ctx,
		RequestID:  requestID,
		ResponseID: responseID,
	}
	mock.lockSelectBestAnswer.Lock()
	mock.calls.SelectBestAnswer = append(mock.calls.SelectBestAnswer, callInfo)
	mock.lockSelectBestAnswer.Unlock()
	return mock.SelectBestAnswerFunc(ctx, requestID, responseID)
}

func (mock *requestServiceMock) SelectBestAnswerCalls() []struct {
	Ctx        context.Context
	RequestID  uuid.UUID
	ResponseID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		RequestID  uuid.UUID
		ResponseID uuid.UUID
	}
	mock.lockSelectBestAnswer.RLock()
	calls = mock.calls.SelectBestAnswer
	mock.lockSelectBestAnswer.RUnlock()
	return calls
}

func (mock *requestServiceMock) MarkIncorrect(ctx context.Context, requestID uuid.UUID, responseID uuid.UUID) (*request.DecisionResult, error) {
	if mock.MarkIncorrectFunc == nil {
		panic("requestServiceMock.MarkIncorrectFunc: method is nil but requestService.MarkIncorrect was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RequestID  uuid.UUID
		ResponseID uuid.UUID
	}{
		Ctx:        ctx,
		RequestID:  requestID,
		ResponseID: responseID,
	}
	mock.lockMarkIncorrect.Lock()
	mock.calls.MarkIncorrect = append(mock.calls.MarkIncorrect, callInfo)
	mock.lockMarkIncorrect.Unlock()
	return mock.MarkIncorrectFunc(ctx, requestID, responseID)
}

func (mock *requestServiceMock) MarkIncorrectCalls() []struct {
	Ctx        context.Context
	RequestID  uuid.UUID
	ResponseID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		RequestID  uuid.UUID
		ResponseID uuid.UUID
	}
	mock.lockMarkIncorrect.RLock()
	calls = mock.calls.MarkIncorrect
	mock.lockMarkIncorrect.RUnlock()
	return calls
}

func (mock *requestServiceMock) ResolveResponseFile(ctx context.Context, responseID uuid.UUID) (*request.FileLink, error) {
	if mock.ResolveResponseFileFunc == nil {
		panic("requestServiceMock.ResolveResponseFileFunc: method is nil but requestService.ResolveResponseFile was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ResponseID uuid.UUID
	}{
		Ctx:        ctx,
		ResponseID: responseID,
	}
	mock.lockResolveResponseFile.Lock()
	mock.calls.ResolveResponseFile = append(mock.calls.ResolveResponseFile, callInfo)
	mock.lockResolveResponseFile.Unlock()
	return mock.ResolveResponseFileFunc(ctx, responseID)
}

func (mock *requestServiceMock) ResolveResponseFileCalls() []struct {
	Ctx        context.Context
	ResponseID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		ResponseID uuid.UUID
	}
	mock.lockResolveResponseFile.RLock()
	calls = mock.calls.ResolveResponseFile
	mock.lockResolveResponseFile.RUnlock()
	return calls
}

func (mock *requestServiceMock) OpenFile(ctx context.Context, token string) (io.ReadCloser, string, error) {
	if mock.OpenFileFunc == nil {
		panic("requestServiceMock.OpenFileFunc: method is nil but requestService.OpenFile was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockOpenFile.Lock()
	mock.calls.OpenFile = append(mock.calls.OpenFile, callInfo)
	mock.lockOpenFile.Unlock()
	return mock.OpenFileFunc(ctx, token)
}

func (mock *requestServiceMock) OpenFileCalls() []struct {
	Ctx   context.Context
	Token string
} {
	var calls []struct {
		Ctx   context.Context
		Token string
	}
	mock.lockOpenFile.RLock()
	calls = mock.calls.OpenFile
	mock.lockOpenFile.RUnlock()
	return calls
}
