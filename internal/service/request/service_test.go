package request

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

//go:generate moq -out request_repo_mock_test.go -pkg request . requestRepo
//go:generate moq -out response_repo_mock_test.go -pkg request . responseRepo
//go:generate moq -out balance_repo_mock_test.go -pkg request . balanceRepo
//go:generate moq -out quota_repo_mock_test.go -pkg request . quotaRepo
//go:generate moq -out ledger_repo_mock_test.go -pkg request . ledgerRepo
//go:generate moq -out reaction_repo_mock_test.go -pkg request . reactionRepo
//go:generate moq -out blob_store_mock_test.go -pkg request . blobStore
//go:generate moq -out file_signer_mock_test.go -pkg request . fileSigner
//go:generate moq -out notifier_mock_test.go -pkg request . notifier
//go:generate moq -out profile_invalidator_mock_test.go -pkg request . profileInvalidator
//go:generate moq -out tx_manager_mock_test.go -pkg request . txManager

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	requests  *requestRepoMock
	responses *responseRepoMock
	users     *balanceRepoMock
	quota     *quotaRepoMock
	ledger    *ledgerRepoMock
	reactions *reactionRepoMock
	blobs     *blobStoreMock
	signer    *fileSignerMock
	notify    *notifierMock
	profiles  *profileInvalidatorMock
	tx        *txManagerMock
}

// newFixture wires a service whose collaborators are empty mocks, except the
// transaction manager (runs fn inline), the notifier and the profile cache
// (both accept anything).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		requests:  &requestRepoMock{},
		responses: &responseRepoMock{},
		users:     &balanceRepoMock{},
		quota:     &quotaRepoMock{},
		ledger:    &ledgerRepoMock{},
		reactions: &reactionRepoMock{},
		blobs:     &blobStoreMock{},
		signer:    &fileSignerMock{},
		notify: &notifierMock{
			NotifyFunc: func(context.Context, domain.Notification) {},
		},
		profiles: &profileInvalidatorMock{InvalidateFunc: func(uuid.UUID) {}},
		tx: &txManagerMock{
			RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			},
		},
	}

	f.svc = NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		f.requests, f.responses, f.users, f.quota, f.ledger, f.reactions,
		f.blobs, f.signer, f.notify, f.profiles, f.tx, nil,
		domain.DefaultEconomy(),
		FileConfig{
			MaxUploadBytes: 8 << 20,
			SignedURLTTL:   time.Hour,
			PublicBaseURL:  "https://api.korima.test/",
		},
	)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func asUser(id uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), id)
}

func asAdmin(id uuid.UUID) context.Context {
	return ctxutil.WithUserRole(asUser(id), string(domain.UserRoleAdmin))
}

func activeRequest(owner uuid.UUID, points int) *domain.Request {
	return &domain.Request{
		ID:        uuid.New(),
		OwnerID:   owner,
		Title:     "X",
		Category:  domain.CategoryMedicine,
		Points:    points,
		Status:    domain.StatusActive,
		CreatedAt: fixedNow.Add(-time.Hour),
		ExpiresAt: fixedNow.Add(4 * 24 * time.Hour),
	}
}

func linkResponse(requestID, contributor uuid.UUID) *domain.Response {
	link := "https://example.org/paper.pdf"
	return &domain.Response{
		ID:            uuid.New(),
		RequestID:     requestID,
		ContributorID: contributor,
		Kind:          domain.ResponseKindLink,
		LinkURL:       &link,
		Rating:        domain.RatingNone,
		CreatedAt:     fixedNow.Add(-time.Minute),
		ExpiresAt:     fixedNow.Add(7 * 24 * time.Hour),
	}
}

func ptr[T any](v T) *T { return &v }
