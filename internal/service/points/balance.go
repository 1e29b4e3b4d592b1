package points

import (
	"context"
	"fmt"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

const (
	defaultLedgerPage = 20
	maxLedgerPage     = 100
)

// GetBalance reports the caller's points, level, check-in eligibility and
// today's request quota usage.
func (s *Service) GetBalance(ctx context.Context) (*domain.Balance, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("points.GetBalance: %w", err)
	}

	balance, err := s.balanceOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("points.GetBalance: %w", err)
	}
	return balance, nil
}

func (s *Service) balanceOf(ctx context.Context, user *domain.User) (*domain.Balance, error) {
	now := s.now().UTC()

	used, err := s.quota.Used(ctx, user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("quota used: %w", err)
	}

	b := &domain.Balance{
		Points:         user.Points,
		Level:          user.Level(),
		CanCheckIn:     user.CanCheckIn(now, s.economy.CheckInCooldown),
		NextCheckInAt:  user.NextCheckInAt(now, s.economy.CheckInCooldown),
		LastCheckInAt:  user.LastCheckInAt,
		RequestsToday:  used,
		RequestsPerDay: s.economy.DailyRequestQuota,
	}
	if next, missing, ok := domain.NextLevel(user.Points); ok {
		b.NextLevel = &next
		b.PointsToNext = missing
	}
	return b, nil
}

// ListLedger returns one page of the caller's balance history, newest first.
func (s *Service) ListLedger(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	var errs []domain.FieldError
	if limit < 0 || limit > maxLedgerPage {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "out of range"})
	}
	if offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return nil, 0, domain.NewValidationErrors(errs)
	}
	if limit == 0 {
		limit = defaultLedgerPage
	}

	entries, total, err := s.ledger.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("points.ListLedger: %w", err)
	}
	return entries, total, nil
}
