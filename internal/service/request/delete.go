package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// DeleteRequest removes a request with its responses, comments, likes and
// saves. Admin only; offered points are not refunded. Stored files are
// removed after the rows are gone.
func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	var keys []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		resps, err := s.responses.ListByRequest(txCtx, id)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		for _, r := range resps {
			if r.HasStoredFile() {
				keys = append(keys, *r.FileKey)
			}
		}
		return s.requests.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("request.DeleteRequest: %w", err)
	}

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.WarnContext(ctx, "delete blob of removed request",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "request deleted by admin",
		slog.String("admin_id", userID.String()),
		slog.String("request_id", id.String()),
		slog.Int("files", len(keys)))

	return nil
}
