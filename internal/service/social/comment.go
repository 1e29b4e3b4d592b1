package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

const maxCommentLen = 2000

// AddComment attaches a comment to a request and notifies the request owner
// unless they wrote it themselves.
func (s *Service) AddComment(ctx context.Context, requestID uuid.UUID, body string) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewValidationError("body", "required")
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return nil, domain.NewValidationError("body", "too long")
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("social.AddComment: %w", err)
	}

	comment, err := s.comments.Create(ctx, requestID, userID, body)
	if err != nil {
		return nil, fmt.Errorf("social.AddComment: %w", err)
	}

	if req.OwnerID != userID {
		s.notify.Notify(ctx, domain.Notification{
			UserID:      req.OwnerID,
			Type:        domain.NotificationComment,
			Title:       "Nuevo comentario",
			Message:     fmt.Sprintf("Alguien comentó en tu solicitud \"%s\".", req.Title),
			ReferenceID: &req.ID,
		})
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("request_id", requestID.String()),
		slog.String("comment_id", comment.ID.String()))

	return comment, nil
}

// ListComments returns a request's comments oldest first.
func (s *Service) ListComments(ctx context.Context, requestID uuid.UUID) ([]domain.Comment, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return nil, fmt.Errorf("social.ListComments: %w", err)
	}

	comments, err := s.comments.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("social.ListComments: %w", err)
	}
	return comments, nil
}
