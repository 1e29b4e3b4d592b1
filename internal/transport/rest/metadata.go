package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/korima-app/korima-backend/internal/provider"
	"github.com/korima-app/korima-backend/internal/service/metadata"
)

type metadataService interface {
	SearchByTitle(ctx context.Context, query string) ([]provider.Work, error)
	Prefill(ctx context.Context, doi string) (*metadata.Prefill, error)
	CheckOpenAccess(ctx context.Context, doi string) (*provider.OpenAccess, error)
}

// MetadataHandler serves bibliographic lookups used to prefill requests.
type MetadataHandler struct {
	svc metadataService
	log *slog.Logger
}

// NewMetadataHandler creates a MetadataHandler.
func NewMetadataHandler(svc metadataService, logger *slog.Logger) *MetadataHandler {
	return &MetadataHandler{svc: svc, log: logger.With("handler", "metadata")}
}

// Search handles GET /metadata/search?q=.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	works, err := h.svc.SearchByTitle(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	items := make([]workDTO, len(works))
	for i, wk := range works {
		items[i] = toWorkDTO(wk)
	}
	writeJSON(w, http.StatusOK, listResponse[workDTO]{Items: items, Total: len(items)})
}

// DOI handles GET /metadata/doi?doi=. The reply carries the work, a
// suggested category and, when available, open-access information.
func (h *MetadataHandler) DOI(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Prefill(r.Context(), r.URL.Query().Get("doi"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrefillDTO(p))
}

// OpenAccess handles GET /metadata/open-access?doi=.
func (h *MetadataHandler) OpenAccess(w http.ResponseWriter, r *http.Request) {
	oa, err := h.svc.CheckOpenAccess(r.Context(), r.URL.Query().Get("doi"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOpenAccessDTO(oa))
}
