package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/service/profile"
)

type profileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (domain.PublicProfile, error)
	GetMe(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input profile.UpdateProfileInput) (*domain.User, error)
}

// ProfileHandler serves /me and public profiles.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

// updateProfileRequest distinguishes an absent field (nil, untouched) from an
// empty one (cleared).
type updateProfileRequest struct {
	FullName    *string `json:"full_name"`
	AvatarURL   *string `json:"avatar_url"`
	Country     *string `json:"country"`
	Institution *string `json:"institution"`
	Specialty   *string `json:"specialty"`
	Bio         *string `json:"bio"`
	Website     *string `json:"website"`
}

// Me handles GET /me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetMe(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// UpdateMe handles PATCH /me.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), profile.UpdateProfileInput{
		FullName:    req.FullName,
		AvatarURL:   req.AvatarURL,
		Country:     req.Country,
		Institution: req.Institution,
		Specialty:   req.Specialty,
		Bio:         req.Bio,
		Website:     req.Website,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// Get handles GET /users/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(&p))
}
