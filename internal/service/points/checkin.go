package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// CheckIn grants the daily reward if the caller's cooldown has elapsed.
// A second attempt inside the window fails with domain.ErrAlreadyCheckedIn
// and leaves the balance untouched.
func (s *Service) CheckIn(ctx context.Context) (*domain.Balance, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	var user *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.CheckIn(txCtx, userID, s.economy.CheckInReward, now, s.economy.CheckInCooldown)
		if err != nil {
			return err
		}
		return s.ledger.Append(txCtx, &domain.LedgerEntry{
			UserID: userID,
			Delta:  s.economy.CheckInReward,
			Reason: domain.LedgerCheckIn,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return nil, err
		}
		return nil, fmt.Errorf("points.CheckIn: %w", err)
	}

	s.profiles.Invalidate(userID)
	s.metrics.CheckIn()
	s.metrics.PointsMoved(domain.LedgerCheckIn.String(), s.economy.CheckInReward)

	s.log.InfoContext(ctx, "check-in granted",
		slog.String("user_id", userID.String()),
		slog.Int("points", user.Points))

	balance, err := s.balanceOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("points.CheckIn: %w", err)
	}
	return balance, nil
}
