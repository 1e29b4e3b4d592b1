package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/korima-app/korima-backend/internal/auth"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Refresh trades a refresh token for a new token pair. The presented token
// is consumed; presenting it again is treated as theft and ends every
// session of its owner.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	hash := auth.HashToken(input.RefreshToken)

	token, err := s.tokens.Consume(ctx, hash)
	if errors.Is(err, domain.ErrNotFound) {
		s.detectReplay(ctx, hash)
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh consume: %w", err)
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "refresh for deleted user", slog.String("user_id", token.UserID.String()))
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return result, nil
}

// detectReplay revokes all sessions of the owner when hash belongs to a
// token that was already rotated but has not expired yet.
func (s *Service) detectReplay(ctx context.Context, hash string) {
	prior, err := s.tokens.GetByHash(ctx, hash)
	if err != nil || !prior.IsRevoked() || prior.IsExpired(time.Now()) {
		return
	}

	n, err := s.tokens.RevokeAllByUser(ctx, prior.UserID)
	if err != nil {
		s.log.ErrorContext(ctx, "revoke sessions after refresh replay",
			slog.String("user_id", prior.UserID.String()),
			slog.String("error", err.Error()))
		return
	}
	s.log.WarnContext(ctx, "refresh token replayed, sessions revoked",
		slog.String("user_id", prior.UserID.String()),
		slog.Int("revoked", n))
}
