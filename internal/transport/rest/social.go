package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

type socialService interface {
	AddComment(ctx context.Context, requestID uuid.UUID, body string) (*domain.Comment, error)
	ListComments(ctx context.Context, requestID uuid.UUID) ([]domain.Comment, error)
	ToggleLike(ctx context.Context, requestID uuid.UUID) (bool, error)
	ToggleSave(ctx context.Context, requestID uuid.UUID) (bool, error)
	ListSaved(ctx context.Context, limit, offset int) ([]domain.RequestView, int, error)
}

// SocialHandler serves comments, likes and saved requests.
type SocialHandler struct {
	svc socialService
	log *slog.Logger
}

// NewSocialHandler creates a SocialHandler.
func NewSocialHandler(svc socialService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{svc: svc, log: logger.With("handler", "social")}
}

type addCommentRequest struct {
	Body string `json:"body"`
}

// ListComments handles GET /requests/{id}/comments.
func (h *SocialHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	withAuthors(r.Context(), h.log, comments)
	items := make([]commentDTO, len(comments))
	for i, c := range comments {
		items[i] = toCommentDTO(c)
	}
	writeJSON(w, http.StatusOK, listResponse[commentDTO]{Items: items, Total: len(items)})
}

// AddComment handles POST /requests/{id}/comments.
func (h *SocialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req addCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.AddComment(r.Context(), id, req.Body)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	comments := []domain.Comment{*c}
	withAuthors(r.Context(), h.log, comments)
	writeJSON(w, http.StatusCreated, toCommentDTO(comments[0]))
}

// ToggleLike handles POST /requests/{id}/like.
func (h *SocialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "liked", h.svc.ToggleLike)
}

// ToggleSave handles POST /requests/{id}/save.
func (h *SocialHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "saved", h.svc.ToggleSave)
}

func (h *SocialHandler) toggle(w http.ResponseWriter, r *http.Request, key string, fn func(context.Context, uuid.UUID) (bool, error)) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	on, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{key: on})
}

// ListSaved handles GET /saved.
func (h *SocialHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	views, total, err := h.svc.ListSaved(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	withOwners(r.Context(), h.log, views)
	items := make([]requestDTO, len(views))
	for i, v := range views {
		items[i] = toRequestViewDTO(v)
	}
	writeJSON(w, http.StatusOK, listResponse[requestDTO]{Items: items, Total: total})
}
