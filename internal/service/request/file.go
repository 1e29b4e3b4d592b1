package request

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// FileLink is a time-limited download URL for a response's file.
type FileLink struct {
	URL       string
	FileName  string
	ExpiresAt time.Time
}

// ResolveResponseFile issues a signed download link for a stored file. Only
// the request owner and the contributor may resolve it, and only until the
// response expires; everyone else gets domain.ErrNotFound.
func (s *Service) ResolveResponseFile(ctx context.Context, responseID uuid.UUID) (*FileLink, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	resp, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("request.ResolveResponseFile: %w", err)
	}
	req, err := s.requests.GetByID(ctx, resp.RequestID)
	if err != nil {
		return nil, fmt.Errorf("request.ResolveResponseFile: %w", err)
	}

	now := s.now()
	if !resp.CanViewPayload(userID, req.OwnerID, now) || !resp.HasStoredFile() {
		return nil, fmt.Errorf("request.ResolveResponseFile: %w", domain.ErrResponseNotFound)
	}

	expiresAt := now.Add(s.files.SignedURLTTL)
	if resp.ExpiresAt.Before(expiresAt) {
		expiresAt = resp.ExpiresAt
	}

	token, err := s.signer.SignFileToken(resp.ID, *resp.FileKey, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("request.ResolveResponseFile sign: %w", err)
	}

	link := &FileLink{
		URL:       strings.TrimRight(s.files.PublicBaseURL, "/") + "/files/" + token,
		ExpiresAt: expiresAt,
	}
	if resp.FileName != nil {
		link.FileName = *resp.FileName
	}
	return link, nil
}

// OpenFile streams the blob behind a signed token. The response is reloaded
// so that files purged or expired since signing are refused.
func (s *Service) OpenFile(ctx context.Context, token string) (io.ReadCloser, string, error) {
	grant, err := s.signer.ParseFileToken(token)
	if err != nil {
		return nil, "", fmt.Errorf("request.OpenFile: %w", domain.ErrNotFound)
	}

	resp, err := s.responses.GetByID(ctx, grant.ResponseID)
	if err != nil {
		return nil, "", fmt.Errorf("request.OpenFile: %w", err)
	}
	if !resp.HasStoredFile() || *resp.FileKey != grant.Key || resp.IsExpired(s.now()) {
		return nil, "", fmt.Errorf("request.OpenFile: %w", domain.ErrNotFound)
	}

	rc, err := s.blobs.Open(ctx, grant.Key)
	if err != nil {
		return nil, "", fmt.Errorf("request.OpenFile: %w", err)
	}

	name := "documento.pdf"
	if resp.FileName != nil && *resp.FileName != "" {
		name = *resp.FileName
	}
	return rc, name, nil
}
