package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/adapter/blobstore"
	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// SubmitResponse attaches a link or an uploaded PDF to an active request.
// No points move here; they move only when the owner picks a best answer.
func (s *Service) SubmitResponse(ctx context.Context, requestID uuid.UUID, input SubmitResponseInput) (*domain.Response, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.LinkURL = strings.TrimSpace(input.LinkURL)
	input.Message = strings.TrimSpace(input.Message)
	if err := input.Validate(s.files.MaxUploadBytes); err != nil {
		return nil, err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("request.SubmitResponse: %w", err)
	}

	now := s.now().UTC()
	if !req.IsOpen(now) {
		return nil, domain.ErrRequestNotActive
	}
	if req.IsOwnedBy(userID) {
		return nil, fmt.Errorf("request.SubmitResponse: cannot answer own request: %w", domain.ErrForbidden)
	}

	resp := &domain.Response{
		RequestID:     requestID,
		ContributorID: userID,
		Message:       optional(input.Message),
		Rating:        domain.RatingNone,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.economy.ResponseValidity),
	}

	if input.File != nil {
		key, err := s.storeUpload(ctx, userID, requestID, input.File)
		if err != nil {
			return nil, err
		}
		name := input.File.Name
		resp.Kind = domain.ResponseKindFile
		resp.FileKey = &key
		resp.FileName = &name
	} else {
		resp.Kind = domain.ResponseKindLink
		resp.LinkURL = &input.LinkURL
	}

	created, err := s.responses.Create(ctx, resp)
	if err != nil {
		if resp.FileKey != nil {
			if delErr := s.blobs.Delete(context.WithoutCancel(ctx), *resp.FileKey); delErr != nil {
				s.log.ErrorContext(ctx, "orphaned upload",
					slog.String("key", *resp.FileKey),
					slog.String("error", delErr.Error()))
			}
		}
		return nil, fmt.Errorf("request.SubmitResponse: %w", err)
	}

	s.metrics.ResponseSubmitted(created.Kind.String())
	s.notify.Notify(ctx, domain.Notification{
		UserID:      req.OwnerID,
		Type:        domain.NotificationResponse,
		Title:       "Nueva respuesta",
		Message:     fmt.Sprintf("Tu solicitud \"%s\" recibió una respuesta.", req.Title),
		ReferenceID: &req.ID,
	})

	s.log.InfoContext(ctx, "response submitted",
		slog.String("request_id", requestID.String()),
		slog.String("response_id", created.ID.String()),
		slog.String("kind", created.Kind.String()))

	return created, nil
}

// storeUpload checks the PDF signature and writes the file to the blob store.
func (s *Service) storeUpload(ctx context.Context, userID, requestID uuid.UUID, file *FileUpload) (string, error) {
	body, isPDF, err := blobstore.SniffPDF(file.Body)
	if err != nil {
		return "", fmt.Errorf("request.SubmitResponse read upload: %w", err)
	}
	if !isPDF {
		return "", domain.NewValidationError("file", "only PDF files are accepted")
	}

	key := blobstore.ResponseKey(userID, requestID, s.now())
	if err := s.blobs.Put(ctx, key, body); err != nil {
		return "", fmt.Errorf("request.SubmitResponse store upload: %w", err)
	}
	return key, nil
}

// ListResponses returns the responses of a request in submission order.
// Payload fields are blanked unless the caller may view them.
func (s *Service) ListResponses(ctx context.Context, requestID uuid.UUID) ([]domain.ResponseView, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("request.ListResponses: %w", err)
	}

	resps, err := s.responses.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("request.ListResponses: %w", err)
	}

	viewer, _ := ctxutil.UserIDFromCtx(ctx)
	now := s.now()

	views := make([]domain.ResponseView, len(resps))
	for i, r := range resps {
		visible := r.CanViewPayload(viewer, req.OwnerID, now)
		available := visible && r.HasStoredFile()
		// The storage key is never exposed; files are fetched via signed links.
		r.FileKey = nil
		if !visible {
			r.LinkURL = nil
			r.FileName = nil
		}
		views[i] = domain.ResponseView{Response: r, PayloadVisible: visible, FileAvailable: available}
	}
	return views, nil
}

// isNotFound reports whether err is any flavour of not-found.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
