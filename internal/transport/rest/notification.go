package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/service/notification"
)

type notificationService interface {
	List(ctx context.Context, input notification.ListInput) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type notificationListResponse struct {
	Items  []notificationDTO `json:"items"`
	Total  int               `json:"total"`
	Unread int               `json:"unread"`
}

// List handles GET /notifications?unread=true&limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	unreadOnly := queryBool(r, "unread")

	input := notification.ListInput{Limit: limit, Offset: offset}
	if unreadOnly != nil {
		input.UnreadOnly = *unreadOnly
	}

	notes, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	unread, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	items := make([]notificationDTO, len(notes))
	for i, n := range notes {
		items[i] = toNotificationDTO(n)
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Items: items, Total: total, Unread: unread})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
