package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/korima-app/korima-backend/internal/service/auth"
)

type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves /auth/*.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	User         userDTO `json:"user"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.session(w, r, http.StatusCreated, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.Register(ctx, auth.RegisterInput{Email: req.Email, Password: req.Password, FullName: req.FullName})
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.session(w, r, http.StatusOK, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.LoginWithPassword(ctx, auth.LoginPasswordInput{Email: req.Email, Password: req.Password})
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.session(w, r, http.StatusOK, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.Refresh(ctx, auth.RefreshInput{RefreshToken: req.RefreshToken})
	})
}

// Logout handles POST /auth/logout. The caller is identified by the access
// token the auth middleware already resolved.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request, status int, start func(context.Context) (*auth.AuthResult, error)) {
	result, err := start(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, sessionResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "Bearer",
		User:         toUserDTO(result.User),
	})
}
