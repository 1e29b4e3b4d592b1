package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/korima-app/korima-backend/internal/domain"
)

type pointsService interface {
	GetBalance(ctx context.Context) (*domain.Balance, error)
	CheckIn(ctx context.Context) (*domain.Balance, error)
	ListLedger(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, int, error)
}

// PointsHandler serves the balance, check-in and ledger endpoints.
type PointsHandler struct {
	svc pointsService
	log *slog.Logger
}

// NewPointsHandler creates a PointsHandler.
func NewPointsHandler(svc pointsService, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{svc: svc, log: logger.With("handler", "points")}
}

// Balance handles GET /points.
func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBalance(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(b))
}

// CheckIn handles POST /points/checkin.
func (h *PointsHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CheckIn(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(b))
}

// Ledger handles GET /points/ledger.
func (h *PointsHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	entries, total, err := h.svc.ListLedger(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	items := make([]ledgerDTO, len(entries))
	for i, e := range entries {
		items[i] = toLedgerDTO(e)
	}
	writeJSON(w, http.StatusOK, listResponse[ledgerDTO]{Items: items, Total: total})
}
