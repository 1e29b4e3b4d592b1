package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

const maxJSONBody = 1 << 20

// errorResponse is the body of every non-2xx JSON reply. Code is a stable
// machine-readable identifier; Error is for humans.
type errorResponse struct {
	Code   string       `json:"code"`
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// preconditionCodes name the specific PreconditionFailed cases so clients can
// react without parsing messages.
var preconditionCodes = []struct {
	err  error
	code string
}{
	{domain.ErrQuotaExceeded, "quota_exceeded"},
	{domain.ErrInsufficientPoints, "insufficient_points"},
	{domain.ErrRequestNotActive, "request_not_active"},
	{domain.ErrAlreadyDecided, "already_decided"},
	{domain.ErrAlreadyCheckedIn, "already_checked_in"},
}

// writeServiceError maps a service error onto the HTTP taxonomy. Unknown
// errors are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Code: "validation_failed", Error: "validation failed"}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", "validation failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not_owner", "only the request owner can do this")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "permission denied")
	case errors.Is(err, domain.ErrPrecondition):
		code := "precondition_failed"
		for _, pc := range preconditionCodes {
			if errors.Is(err, pc.err) {
				code = pc.code
				break
			}
		}
		writeError(w, http.StatusConflict, code, preconditionMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "conflict, please retry")
	case errors.Is(err, domain.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, "upstream_timeout", "metadata provider timed out")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", "metadata provider unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func preconditionMessage(err error) string {
	for _, pc := range preconditionCodes {
		if errors.Is(err, pc.err) {
			msg := pc.err.Error()
			return strings.TrimSuffix(msg, ": "+domain.ErrPrecondition.Error())
		}
	}
	return domain.ErrPrecondition.Error()
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

// pathUUID parses the named path value. It writes a 400 and returns false on
// a malformed ID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// page reads limit and offset query parameters. Missing values are zero so
// services apply their own defaults; malformed ones become -1 and fail
// validation there.
func page(r *http.Request) (limit, offset int) {
	return queryInt(r, "limit"), queryInt(r, "offset")
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
