package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// GetRequest returns one request with its computed status, counters and the
// caller's like/save flags. Anonymous callers are allowed.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*domain.RequestView, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("request.GetRequest: %w", err)
	}

	viewer, _ := ctxutil.UserIDFromCtx(ctx)
	views, err := s.enrich(ctx, viewer, []domain.Request{*req})
	if err != nil {
		return nil, fmt.Errorf("request.GetRequest: %w", err)
	}
	return &views[0], nil
}

// ListRequests returns one page of requests matching input and the total
// number of matches.
func (s *Service) ListRequests(ctx context.Context, input ListRequestsInput) ([]domain.RequestView, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	viewer, _ := ctxutil.UserIDFromCtx(ctx)
	return s.list(ctx, viewer, input.filter())
}

// ListMyRequests is ListRequests restricted to the caller's own requests.
func (s *Service) ListMyRequests(ctx context.Context, input ListRequestsInput) ([]domain.RequestView, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	f := input.filter()
	f.OwnerID = &userID
	return s.list(ctx, userID, f)
}

func (s *Service) list(ctx context.Context, viewer uuid.UUID, f domain.RequestFilter) ([]domain.RequestView, int, error) {
	reqs, total, err := s.requests.List(ctx, f, s.now())
	if err != nil {
		return nil, 0, fmt.Errorf("request.ListRequests: %w", err)
	}
	views, err := s.enrich(ctx, viewer, reqs)
	if err != nil {
		return nil, 0, fmt.Errorf("request.ListRequests: %w", err)
	}
	return views, total, nil
}

// Enrich turns stored requests into views for viewer. It is exported for
// listings assembled by other services, such as saved requests.
func (s *Service) Enrich(ctx context.Context, viewer uuid.UUID, reqs []domain.Request) ([]domain.RequestView, error) {
	return s.enrich(ctx, viewer, reqs)
}

func (s *Service) enrich(ctx context.Context, viewer uuid.UUID, reqs []domain.Request) ([]domain.RequestView, error) {
	views := make([]domain.RequestView, len(reqs))
	if len(reqs) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	stats, err := s.requests.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	liked := map[uuid.UUID]bool{}
	saved := map[uuid.UUID]bool{}
	if viewer != uuid.Nil {
		// Viewer flags are decoration; a failure here must not hide the list.
		if liked, err = s.reactions.LikedBy(ctx, viewer, ids); err != nil {
			s.log.WarnContext(ctx, "load liked flags", slog.String("error", err.Error()))
			liked = map[uuid.UUID]bool{}
		}
		if saved, err = s.reactions.SavedBy(ctx, viewer, ids); err != nil {
			s.log.WarnContext(ctx, "load saved flags", slog.String("error", err.Error()))
			saved = map[uuid.UUID]bool{}
		}
	}

	now := s.now()
	for i, r := range reqs {
		views[i] = domain.RequestView{
			Request:       r,
			CurrentStatus: domain.ComputeStatus(r, now),
			Stats:         stats[r.ID],
			LikedByMe:     liked[r.ID],
			SavedByMe:     saved[r.ID],
		}
	}
	return views, nil
}
