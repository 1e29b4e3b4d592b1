// Package pubsub delivers notification events to live subscribers. Redis is
// used when configured so that every server instance sees every event; the
// in-memory broker serves single-instance deployments and tests.
package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Broker publishes raw payloads on named channels.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (Subscription, error)
	Ping(ctx context.Context) error
	Close() error
}

// Subscription is a live feed of payloads from one channel. Messages is
// closed after Close or when the broker shuts down.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// New returns a Redis broker when cfg.URL is set and an in-memory broker
// otherwise.
func New(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (Broker, error) {
	if !cfg.Enabled() {
		logger.Info("pubsub: redis not configured, using in-memory broker")
		return NewMemory(), nil
	}
	return NewRedis(ctx, cfg.URL, logger)
}

// NotificationEvent is the JSON frame pushed to clients.
type NotificationEvent struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Notifications publishes and subscribes to per-user notification channels.
type Notifications struct {
	broker Broker
	prefix string
}

// NewNotifications creates a per-user channel helper on top of broker.
func NewNotifications(broker Broker, prefix string) *Notifications {
	return &Notifications{broker: broker, prefix: prefix}
}

// Channel returns the channel name for a user.
func (n *Notifications) Channel(userID uuid.UUID) string {
	return n.prefix + userID.String()
}

// Publish sends one notification to its recipient's channel.
func (n *Notifications) Publish(ctx context.Context, note domain.Notification) error {
	payload, err := json.Marshal(NotificationEvent{
		ID:          note.ID,
		Type:        note.Type.String(),
		Title:       note.Title,
		Message:     note.Message,
		ReferenceID: note.ReferenceID,
		Read:        note.Read,
		CreatedAt:   note.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.broker.Publish(ctx, n.Channel(note.UserID), payload); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Subscribe opens a feed of the user's notifications.
func (n *Notifications) Subscribe(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	return n.broker.Subscribe(ctx, n.Channel(userID))
}
