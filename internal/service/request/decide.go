package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// DecisionResult describes the outcome of an owner's rating.
type DecisionResult struct {
	Request  *domain.Request
	Response *domain.Response
	Credited int
}

// SelectBestAnswer rates responseID as the best answer, credits its
// contributor with the offered points and completes the request. The whole
// decision commits or rolls back as one unit; a concurrent second decision on
// the same request fails with domain.ErrAlreadyDecided.
func (s *Service) SelectBestAnswer(ctx context.Context, requestID, responseID uuid.UUID) (*DecisionResult, error) {
	res, err := s.decide(ctx, requestID, responseID, domain.RatingBest)
	if err != nil {
		return nil, fmt.Errorf("request.SelectBestAnswer: %w", err)
	}

	s.profiles.Invalidate(res.Response.ContributorID)
	s.metrics.Decision(domain.RatingBest.String())
	s.metrics.PointsMoved(domain.LedgerBestAnswerCredit.String(), res.Credited)
	s.notify.Notify(ctx, domain.Notification{
		UserID:      res.Response.ContributorID,
		Type:        domain.NotificationPoints,
		Title:       "¡Mejor respuesta!",
		Message:     fmt.Sprintf("Tu respuesta a \"%s\" fue elegida como la mejor. Ganaste %d puntos.", res.Request.Title, res.Credited),
		ReferenceID: &res.Request.ID,
	})
	return res, nil
}

// MarkIncorrect rejects responseID and closes the request. The offered
// points are forfeited.
func (s *Service) MarkIncorrect(ctx context.Context, requestID, responseID uuid.UUID) (*DecisionResult, error) {
	res, err := s.decide(ctx, requestID, responseID, domain.RatingIncorrect)
	if err != nil {
		return nil, fmt.Errorf("request.MarkIncorrect: %w", err)
	}

	s.metrics.Decision(domain.RatingIncorrect.String())
	s.notify.Notify(ctx, domain.Notification{
		UserID:      res.Response.ContributorID,
		Type:        domain.NotificationResponse,
		Title:       "Respuesta marcada como incorrecta",
		Message:     fmt.Sprintf("El autor de \"%s\" marcó tu respuesta como incorrecta.", res.Request.Title),
		ReferenceID: &res.Request.ID,
	})
	return res, nil
}

func (s *Service) decide(ctx context.Context, requestID, responseID uuid.UUID, rating domain.Rating) (*DecisionResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	status := domain.StatusCompleted
	if rating == domain.RatingIncorrect {
		status = domain.StatusClosed
	}

	var res DecisionResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Row lock serialises concurrent deciders on the same request.
		req, err := s.requests.GetForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.IsOwnedBy(userID) {
			return domain.ErrNotOwner
		}

		// A decided request reports AlreadyDecided before any expiry check,
		// so the loser of a race sees why it lost.
		if req.IsDecided() {
			return domain.ErrAlreadyDecided
		}
		decided, err := s.responses.HasDecision(txCtx, requestID)
		if err != nil {
			return fmt.Errorf("check decision: %w", err)
		}
		if decided {
			return domain.ErrAlreadyDecided
		}

		now := s.now().UTC()
		if !req.IsOpen(now) {
			return domain.ErrRequestNotActive
		}

		resp, err := s.responses.GetByID(txCtx, responseID)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrResponseNotFound
			}
			return err
		}
		if resp.RequestID != requestID {
			return domain.ErrResponseNotFound
		}

		if err := s.responses.SetRating(txCtx, responseID, rating, now); err != nil {
			return fmt.Errorf("set rating: %w", err)
		}

		if rating == domain.RatingBest {
			if _, err := s.users.Credit(txCtx, resp.ContributorID, req.Points); err != nil {
				return fmt.Errorf("credit contributor: %w", err)
			}
			if err := s.ledger.Append(txCtx, &domain.LedgerEntry{
				UserID:      resp.ContributorID,
				Delta:       req.Points,
				Reason:      domain.LedgerBestAnswerCredit,
				ReferenceID: &req.ID,
			}); err != nil {
				return fmt.Errorf("append ledger: %w", err)
			}
			res.Credited = req.Points
		}

		if err := s.requests.SetDecision(txCtx, requestID, status, now); err != nil {
			return fmt.Errorf("set decision: %w", err)
		}
		if _, err := s.responses.ShortenExpiry(txCtx, requestID, now.Add(s.economy.DecisionRetention)); err != nil {
			return fmt.Errorf("shorten expiry: %w", err)
		}

		req.Status = status
		req.DecidedAt = &now
		resp.Rating = rating
		resp.RatedAt = &now
		resp.ExpiresAt = domain.DecisionExpiry(resp.ExpiresAt, now, s.economy.DecisionRetention)
		res.Request = req
		res.Response = resp
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyDecided) {
			s.log.WarnContext(ctx, "duplicate decision rejected",
				slog.String("request_id", requestID.String()),
				slog.String("response_id", responseID.String()))
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "request decided",
		slog.String("request_id", requestID.String()),
		slog.String("response_id", responseID.String()),
		slog.String("rating", rating.String()),
		slog.Int("credited", res.Credited))

	return &res, nil
}
