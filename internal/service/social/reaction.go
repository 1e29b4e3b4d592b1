package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

const (
	defaultSavedPage = 20
	maxSavedPage     = 100
)

// ToggleLike flips the caller's like on a request and reports the new state.
// The owner is notified when someone else adds a like.
func (s *Service) ToggleLike(ctx context.Context, requestID uuid.UUID) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return false, fmt.Errorf("social.ToggleLike: %w", err)
	}

	liked, err := s.reactions.ToggleLike(ctx, userID, requestID)
	if err != nil {
		return false, fmt.Errorf("social.ToggleLike: %w", err)
	}

	if liked && req.OwnerID != userID {
		s.notify.Notify(ctx, domain.Notification{
			UserID:      req.OwnerID,
			Type:        domain.NotificationLike,
			Title:       "Nuevo me gusta",
			Message:     fmt.Sprintf("A alguien le gustó tu solicitud \"%s\".", req.Title),
			ReferenceID: &req.ID,
		})
	}
	return liked, nil
}

// ToggleSave flips the caller's bookmark on a request and reports the new state.
func (s *Service) ToggleSave(ctx context.Context, requestID uuid.UUID) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return false, fmt.Errorf("social.ToggleSave: %w", err)
	}

	saved, err := s.reactions.ToggleSave(ctx, userID, requestID)
	if err != nil {
		return false, fmt.Errorf("social.ToggleSave: %w", err)
	}
	return saved, nil
}

// ListSaved returns the caller's bookmarked requests, most recently saved first.
func (s *Service) ListSaved(ctx context.Context, limit, offset int) ([]domain.RequestView, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	var errs []domain.FieldError
	if limit < 0 || limit > maxSavedPage {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "out of range"})
	}
	if offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return nil, 0, domain.NewValidationErrors(errs)
	}
	if limit == 0 {
		limit = defaultSavedPage
	}

	reqs, total, err := s.requests.ListSavedBy(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("social.ListSaved: %w", err)
	}
	views, err := s.enricher.Enrich(ctx, userID, reqs)
	if err != nil {
		return nil, 0, fmt.Errorf("social.ListSaved: %w", err)
	}
	return views, total, nil
}
