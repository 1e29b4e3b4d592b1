package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// CreateRequest consumes one unit of the caller's daily quota, debits the
// offered points and inserts the request, all in one transaction. Either
// every effect is applied or none is.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.Request, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.normalize(s.economy)
	if err := input.Validate(s.economy); err != nil {
		return nil, err
	}

	category, _ := domain.ParseCategory(input.Category)
	now := s.now().UTC()

	req := &domain.Request{
		OwnerID:     userID,
		Title:       input.Title,
		Description: optional(input.Description),
		Category:    category,
		DOI:         optional(input.DOI),
		Urgent:      input.Urgent,
		Points:      input.Points,
		Status:      domain.StatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.economy.RequestValidity),
	}

	var created *domain.Request
	var balance int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.quota.Consume(txCtx, userID, now, s.economy.DailyRequestQuota); err != nil {
			return fmt.Errorf("consume quota: %w", err)
		}

		var err error
		balance, err = s.users.Debit(txCtx, userID, req.Points)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		created, err = s.requests.Create(txCtx, req)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if err := s.ledger.Append(txCtx, &domain.LedgerEntry{
			UserID:      userID,
			Delta:       -created.Points,
			Reason:      domain.LedgerRequestDebit,
			ReferenceID: &created.ID,
		}); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("request.CreateRequest: %w", err)
	}

	s.metrics.RequestCreated(created.Category.String())
	s.metrics.PointsMoved(domain.LedgerRequestDebit.String(), created.Points)

	s.log.InfoContext(ctx, "request created",
		slog.String("user_id", userID.String()),
		slog.String("request_id", created.ID.String()),
		slog.Int("points", created.Points),
		slog.Int("balance", balance))

	return created, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
