package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// Logout ends every session of the caller.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	n, err := s.tokens.RevokeAllByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.Int("sessions", n))
	return nil
}

// ValidateToken resolves an access token to its user and role. Any failure
// is domain.ErrUnauthorized.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}

// CleanupExpiredTokens deletes expired refresh tokens and returns how many.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "expired refresh tokens deleted", slog.Int("count", n))
	}
	return n, nil
}
