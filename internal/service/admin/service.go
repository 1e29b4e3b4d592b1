// Package admin holds the role management and dashboard operations.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

const (
	defaultUsersLimit = 50
	maxUsersLimit     = 200
)

type userRepo interface {
	SetRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	List(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error)
}

type statsRepo interface {
	AdminStats(ctx context.Context, since time.Time) (domain.AdminStats, error)
}

type profileCache interface {
	Invalidate(id uuid.UUID)
}

// Service implements admin operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	stats statsRepo
	cache profileCache
	now   func() time.Time
}

// NewService creates a new admin service.
func NewService(logger *slog.Logger, users userRepo, stats statsRepo, cache profileCache) *Service {
	return &Service{
		log:   logger.With("service", "admin"),
		users: users,
		stats: stats,
		cache: cache,
		now:   time.Now,
	}
}
