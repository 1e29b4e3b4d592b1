package notification

import (
	"context"
	"log/slog"

	"github.com/korima-app/korima-backend/internal/domain"
)

// Notify stores n in the recipient's inbox and pushes it to any live
// connection. Failures are logged and never returned: the domain operation
// that raised the event has already committed.
func (s *Service) Notify(ctx context.Context, n domain.Notification) {
	if !n.Type.IsValid() {
		s.log.WarnContext(ctx, "notification with unknown type dropped",
			slog.String("type", n.Type.String()))
		return
	}

	if err := s.notifications.Create(ctx, &n); err != nil {
		s.log.ErrorContext(ctx, "store notification",
			slog.String("user_id", n.UserID.String()),
			slog.String("type", n.Type.String()),
			slog.String("error", err.Error()))
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.log.WarnContext(ctx, "publish notification",
			slog.String("user_id", n.UserID.String()),
			slog.String("notification_id", n.ID.String()),
			slog.String("error", err.Error()))
	}
}
