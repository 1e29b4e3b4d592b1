package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/service/request"
)

const multipartOverhead = 1 << 20

type requestService interface {
	CreateRequest(ctx context.Context, input request.CreateRequestInput) (*domain.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.RequestView, error)
	ListRequests(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error)
	ListMyRequests(ctx context.Context, input request.ListRequestsInput) ([]domain.RequestView, int, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	SubmitResponse(ctx context.Context, requestID uuid.UUID, input request.SubmitResponseInput) (*domain.Response, error)
	ListResponses(ctx context.Context, requestID uuid.UUID) ([]domain.ResponseView, error)
	SelectBestAnswer(ctx context.Context, requestID, responseID uuid.UUID) (*request.DecisionResult, error)
	MarkIncorrect(ctx context.Context, requestID, responseID uuid.UUID) (*request.DecisionResult, error)
	ResolveResponseFile(ctx context.Context, responseID uuid.UUID) (*request.FileLink, error)
	OpenFile(ctx context.Context, token string) (io.ReadCloser, string, error)
}

// RequestHandler serves requests, responses, decisions and file downloads.
type RequestHandler struct {
	svc       requestService
	log       *slog.Logger
	maxUpload int64
	now       func() time.Time
}

// NewRequestHandler creates a RequestHandler. maxUpload bounds multipart
// bodies before the service sees them.
func NewRequestHandler(svc requestService, maxUpload int64, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		svc:       svc,
		log:       logger.With("handler", "request"),
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

type createRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DOI         string `json:"doi"`
	Urgent      bool   `json:"urgent"`
	Points      int    `json:"points"`
}

type submitLinkRequest struct {
	LinkURL string `json:"link_url"`
	Message string `json:"message"`
}

// List handles GET /requests. owner=me restricts the listing to the caller's
// own requests.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := page(r)
	input := request.ListRequestsInput{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		Urgent:   queryBool(r, "urgent"),
		Sort:     q.Get("sort"),
		Limit:    limit,
		Offset:   offset,
	}

	var (
		views []domain.RequestView
		total int
		err   error
	)
	if q.Get("owner") == "me" {
		views, total, err = h.svc.ListMyRequests(r.Context(), input)
	} else {
		views, total, err = h.svc.ListRequests(r.Context(), input)
	}
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.renderViews(r.Context(), views, total))
}

func (h *RequestHandler) renderViews(ctx context.Context, views []domain.RequestView, total int) listResponse[requestDTO] {
	withOwners(ctx, h.log, views)
	items := make([]requestDTO, len(views))
	for i, v := range views {
		items[i] = toRequestViewDTO(v)
	}
	return listResponse[requestDTO]{Items: items, Total: total}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.CreateRequest(r.Context(), request.CreateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DOI:         req.DOI,
		Urgent:      req.Urgent,
		Points:      req.Points,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestDTO(created, h.now()))
}

// Get handles GET /requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.svc.GetRequest(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	views := []domain.RequestView{*view}
	withOwners(r.Context(), h.log, views)
	writeJSON(w, http.StatusOK, toRequestViewDTO(views[0]))
}

// Delete handles DELETE /requests/{id} (admin only).
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteRequest(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListResponses handles GET /requests/{id}/responses.
func (h *RequestHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	views, err := h.svc.ListResponses(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	withContributors(r.Context(), h.log, views)
	items := make([]responseDTO, len(views))
	for i, v := range views {
		items[i] = toResponseViewDTO(v)
	}
	writeJSON(w, http.StatusOK, listResponse[responseDTO]{Items: items, Total: len(items)})
}

// SubmitResponse handles POST /requests/{id}/responses. A JSON body carries
// a link; a multipart body carries a PDF in the "file" field.
func (h *RequestHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var input request.SubmitResponseInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
		if err := r.ParseMultipartForm(multipartOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "file too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_body", "invalid multipart body")
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck

		input.Message = r.FormValue("message")
		input.LinkURL = r.FormValue("link_url")
		file, hdr, err := r.FormFile("file")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			writeError(w, http.StatusBadRequest, "invalid_body", "invalid file field")
			return
		}
		if err == nil {
			defer file.Close()
			input.File = &request.FileUpload{Name: hdr.Filename, Size: hdr.Size, Body: file}
		}
	} else {
		var req submitLinkRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		input.LinkURL = req.LinkURL
		input.Message = req.Message
	}

	resp, err := h.svc.SubmitResponse(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp.FileKey = nil
	dto := toResponseDTO(resp)
	dto.PayloadVisible = true
	dto.FileAvailable = resp.Kind == domain.ResponseKindFile
	writeJSON(w, http.StatusCreated, dto)
}

// SelectBest handles POST /requests/{id}/responses/{responseID}/best.
func (h *RequestHandler) SelectBest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.SelectBestAnswer)
}

// MarkIncorrect handles POST /requests/{id}/responses/{responseID}/incorrect.
func (h *RequestHandler) MarkIncorrect(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.MarkIncorrect)
}

func (h *RequestHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, requestID, responseID uuid.UUID) (*request.DecisionResult, error),
) {
	requestID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	responseID, ok := pathUUID(w, r, "responseID")
	if !ok {
		return
	}

	res, err := fn(r.Context(), requestID, responseID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res.Response.FileKey = nil
	writeJSON(w, http.StatusOK, decisionDTO{
		Request:  toRequestDTO(res.Request, h.now()),
		Response: toResponseDTO(res.Response),
		Credited: res.Credited,
	})
}

// FileLink handles GET /responses/{id}/file.
func (h *RequestHandler) FileLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	link, err := h.svc.ResolveResponseFile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toFileLinkDTO(link))
}

// Download handles GET /files/{token}. The token is the only credential.
func (h *RequestHandler) Download(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		writeError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	rc, name, err := h.svc.OpenFile(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	defer rc.Close()

	if name == "" {
		name = "documento.pdf"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.log.WarnContext(r.Context(), "stream file", slog.String("error", err.Error()))
	}
}
