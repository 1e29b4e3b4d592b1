package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p domain.ProfileUpdate) (*domain.User, error)
}

type profileCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.PublicProfile, error)
	Invalidate(id uuid.UUID)
}

// Service implements profile reads and edits.
type Service struct {
	log   *slog.Logger
	users userRepo
	cache profileCache
}

// NewService creates a new profile service.
func NewService(logger *slog.Logger, users userRepo, cache profileCache) *Service {
	return &Service{
		log:   logger.With("service", "profile"),
		users: users,
		cache: cache,
	}
}
