package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// GetProfile returns the public projection of any user.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (domain.PublicProfile, error) {
	p, err := s.cache.Get(ctx, id)
	if err != nil {
		return domain.PublicProfile{}, fmt.Errorf("profile.GetProfile: %w", err)
	}
	return p, nil
}

// GetMe returns the authenticated user's full account.
func (s *Service) GetMe(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile.GetMe: %w", err)
	}
	return user, nil
}

// UpdateProfile edits the authenticated user's profile and drops the cached
// public projection so other readers see the change.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, input.update())
	if err != nil {
		return nil, fmt.Errorf("profile.UpdateProfile: %w", err)
	}
	s.cache.Invalidate(userID)

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID.String()))

	return user, nil
}
