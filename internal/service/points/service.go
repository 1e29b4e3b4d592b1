package points

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/metrics"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CheckIn(ctx context.Context, id uuid.UUID, reward int, now time.Time, cooldown time.Duration) (*domain.User, error)
}

type ledgerRepo interface {
	Append(ctx context.Context, e *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, int, error)
}

type quotaRepo interface {
	Used(ctx context.Context, userID uuid.UUID, day time.Time) (int, error)
}

type profileInvalidator interface {
	Invalidate(id uuid.UUID)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the daily check-in and balance queries.
type Service struct {
	log      *slog.Logger
	users    userRepo
	ledger   ledgerRepo
	quota    quotaRepo
	profiles profileInvalidator
	tx       txManager
	metrics  *metrics.Metrics
	economy  domain.Economy
	now      func() time.Time
}

// NewService creates a new points service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	ledger ledgerRepo,
	quota quotaRepo,
	profiles profileInvalidator,
	tx txManager,
	m *metrics.Metrics,
	economy domain.Economy,
) *Service {
	return &Service{
		log:      logger.With("service", "points"),
		users:    users,
		ledger:   ledger,
		quota:    quota,
		profiles: profiles,
		tx:       tx,
		metrics:  m,
		economy:  economy,
		now:      time.Now,
	}
}
