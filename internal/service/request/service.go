package request

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/auth"
	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, f domain.RequestFilter, now time.Time) ([]domain.Request, int, error)
	Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.RequestStats, error)
	Create(ctx context.Context, req *domain.Request) (*domain.Request, error)
	SetDecision(ctx context.Context, id uuid.UUID, status domain.RequestStatus, decidedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type responseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Response, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error)
	HasDecision(ctx context.Context, requestID uuid.UUID) (bool, error)
	Create(ctx context.Context, resp *domain.Response) (*domain.Response, error)
	SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating, ratedAt time.Time) error
	ShortenExpiry(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int, error)
}

type balanceRepo interface {
	Debit(ctx context.Context, id uuid.UUID, points int) (int, error)
	Credit(ctx context.Context, id uuid.UUID, points int) (int, error)
}

type quotaRepo interface {
	Consume(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, error)
}

type ledgerRepo interface {
	Append(ctx context.Context, e *domain.LedgerEntry) error
}

type reactionRepo interface {
	LikedBy(ctx context.Context, userID uuid.UUID, requestIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	SavedBy(ctx context.Context, userID uuid.UUID, requestIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type blobStore interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type fileSigner interface {
	SignFileToken(responseID uuid.UUID, key string, expiresAt time.Time) (string, error)
	ParseFileToken(token string) (auth.FileGrant, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// profileInvalidator drops cached public profiles whose level may have
// changed with the balance.
type profileInvalidator interface {
	Invalidate(id uuid.UUID)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// FileConfig controls uploads and download links.
type FileConfig struct {
	MaxUploadBytes int64
	SignedURLTTL   time.Duration
	PublicBaseURL  string
}

// Service implements the request lifecycle: creation, responses, decisions
// and file access.
type Service struct {
	log       *slog.Logger
	requests  requestRepo
	responses responseRepo
	users     balanceRepo
	quota     quotaRepo
	ledger    ledgerRepo
	reactions reactionRepo
	blobs     blobStore
	signer    fileSigner
	notify    notifier
	profiles  profileInvalidator
	tx        txManager
	metrics   *metrics.Metrics
	economy   domain.Economy
	files     FileConfig
	now       func() time.Time
}

// NewService creates a new request service.
func NewService(
	logger *slog.Logger,
	requests requestRepo,
	responses responseRepo,
	users balanceRepo,
	quota quotaRepo,
	ledger ledgerRepo,
	reactions reactionRepo,
	blobs blobStore,
	signer fileSigner,
	notify notifier,
	profiles profileInvalidator,
	tx txManager,
	m *metrics.Metrics,
	economy domain.Economy,
	files FileConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "request"),
		requests:  requests,
		responses: responses,
		users:     users,
		quota:     quota,
		ledger:    ledger,
		reactions: reactions,
		blobs:     blobs,
		signer:    signer,
		notify:    notify,
		profiles:  profiles,
		tx:        tx,
		metrics:   m,
		economy:   economy,
		files:     files,
		now:       time.Now,
	}
}
