package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// publisher pushes a stored notification to live subscribers.
type publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Service provides the notification inbox and fan-out.
type Service struct {
	notifications notificationRepo
	publisher     publisher
	log           *slog.Logger
}

// NewService creates a new notification service. publisher may be nil, in
// which case notifications are only stored.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	publisher publisher,
) *Service {
	return &Service{
		notifications: notifications,
		publisher:     publisher,
		log:           log.With("service", "notification"),
	}
}
