// Package analytics builds the staff-only activity report and its CSV and
// printable HTML exports. Everything here is read-only.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

const (
	topContributorsLimit = 10
	trendMonths          = 12
)

type analyticsRepo interface {
	Totals(ctx context.Context) (domain.AnalyticsTotals, error)
	ByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	Levels(ctx context.Context) ([]domain.LevelCount, error)
	TopContributors(ctx context.Context, limit int) ([]domain.TopContributor, error)
	Monthly(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error)
}

// Service produces analytics reports.
type Service struct {
	log  *slog.Logger
	repo analyticsRepo
	now  func() time.Time
}

// NewService creates a new analytics service.
func NewService(logger *slog.Logger, repo analyticsRepo) *Service {
	return &Service{
		log:  logger.With("service", "analytics"),
		repo: repo,
		now:  time.Now,
	}
}

func requireStaff(ctx context.Context) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsStaffCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
