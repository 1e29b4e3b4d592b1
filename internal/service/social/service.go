package social

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListSavedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Request, int, error)
}

type commentRepo interface {
	Create(ctx context.Context, requestID, authorID uuid.UUID, body string) (*domain.Comment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Comment, error)
}

type reactionRepo interface {
	ToggleLike(ctx context.Context, userID, requestID uuid.UUID) (bool, error)
	ToggleSave(ctx context.Context, userID, requestID uuid.UUID) (bool, error)
}

// requestEnricher builds request views with counters and viewer flags.
type requestEnricher interface {
	Enrich(ctx context.Context, viewer uuid.UUID, reqs []domain.Request) ([]domain.RequestView, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Service implements comments, likes and saved requests.
type Service struct {
	log       *slog.Logger
	requests  requestRepo
	comments  commentRepo
	reactions reactionRepo
	enricher  requestEnricher
	notify    notifier
}

// NewService creates a new social service.
func NewService(
	logger *slog.Logger,
	requests requestRepo,
	comments commentRepo,
	reactions reactionRepo,
	enricher requestEnricher,
	notify notifier,
) *Service {
	return &Service{
		log:       logger.With("service", "social"),
		requests:  requests,
		comments:  comments,
		reactions: reactions,
		enricher:  enricher,
		notify:    notify,
	}
}
