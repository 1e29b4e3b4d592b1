package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// errorBody mirrors the REST error shape so clients parse one format.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Code: code, Error: message}) //nolint:errcheck
}
