package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/metrics"
	"github.com/korima-app/korima-backend/internal/transport/dataloader"
	"github.com/korima-app/korima-backend/internal/transport/middleware"
)

// tokenValidator resolves a bearer token to a user and role.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// profileSource feeds the per-request profile loader.
type profileSource interface {
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.PublicProfile, error)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Points        *PointsHandler
	Request       *RequestHandler
	Social        *SocialHandler
	Notification  *NotificationHandler
	Metadata      *MetadataHandler
	Admin         *AdminHandler
	Realtime      http.Handler
	MetricsHandle http.Handler
}

// RouterDeps carries the cross-cutting collaborators of the router.
type RouterDeps struct {
	Logger   *slog.Logger
	Tokens   tokenValidator
	Profiles profileSource
	Metrics  *metrics.Metrics
	Limiter  *middleware.RateLimiter
	CORS     config.CORSConfig
	Limits   config.RateLimitConfig
}

// NewRouter builds the HTTP handler serving the whole API.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc, mws ...middleware.Middleware) {
		mws = append([]middleware.Middleware{middleware.Metrics(deps.Metrics, pattern)}, mws...)
		mux.Handle(pattern, middleware.Chain(mws...)(fn))
	}

	authLimit := deps.Limiter.Limit(deps.Limits.AuthPerMinute)
	uploadLimit := deps.Limiter.Limit(deps.Limits.UploadPerMinute)
	metadataLimit := deps.Limiter.Limit(deps.Limits.MetadataPerMinute)
	staff := middleware.Middleware(middleware.RequireStaff)

	// Health.
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.MetricsHandle != nil {
		mux.Handle("GET /metrics", h.MetricsHandle)
	}

	// Auth.
	handle("POST /auth/register", h.Auth.Register, authLimit)
	handle("POST /auth/login", h.Auth.Login, authLimit)
	handle("POST /auth/refresh", h.Auth.Refresh, authLimit)
	handle("POST /auth/logout", h.Auth.Logout)

	// Profiles.
	handle("GET /me", h.Profile.Me)
	handle("PATCH /me", h.Profile.UpdateMe)
	handle("GET /users/{id}", h.Profile.Get)

	// Points.
	handle("GET /points", h.Points.Balance)
	handle("POST /points/checkin", h.Points.CheckIn)
	handle("GET /points/ledger", h.Points.Ledger)

	// Requests and responses.
	handle("GET /requests", h.Request.List)
	handle("POST /requests", h.Request.Create)
	handle("GET /requests/{id}", h.Request.Get)
	handle("DELETE /requests/{id}", h.Request.Delete)
	handle("GET /requests/{id}/responses", h.Request.ListResponses)
	handle("POST /requests/{id}/responses", h.Request.SubmitResponse, uploadLimit)
	handle("POST /requests/{id}/responses/{responseID}/best", h.Request.SelectBest)
	handle("POST /requests/{id}/responses/{responseID}/incorrect", h.Request.MarkIncorrect)
	handle("GET /responses/{id}/file", h.Request.FileLink)
	handle("GET /files/{token}", h.Request.Download)

	// Social.
	handle("GET /requests/{id}/comments", h.Social.ListComments)
	handle("POST /requests/{id}/comments", h.Social.AddComment)
	handle("POST /requests/{id}/like", h.Social.ToggleLike)
	handle("POST /requests/{id}/save", h.Social.ToggleSave)
	handle("GET /saved", h.Social.ListSaved)

	// Notifications.
	handle("GET /notifications", h.Notification.List)
	handle("POST /notifications/read-all", h.Notification.MarkAllRead)
	handle("POST /notifications/{id}/read", h.Notification.MarkRead)
	handle("DELETE /notifications/{id}", h.Notification.Delete)

	// Bibliographic metadata.
	handle("GET /metadata/search", h.Metadata.Search, metadataLimit)
	handle("GET /metadata/doi", h.Metadata.DOI, metadataLimit)
	handle("GET /metadata/open-access", h.Metadata.OpenAccess, metadataLimit)

	// Administration.
	handle("GET /admin/stats", h.Admin.Stats, staff)
	handle("GET /admin/users", h.Admin.Users, staff)
	handle("PUT /admin/users/{id}/role", h.Admin.SetRole, staff)
	handle("GET /admin/analytics", h.Admin.Analytics, staff)
	handle("GET /admin/analytics/export.csv", h.Admin.ExportCSV, staff)
	handle("GET /admin/analytics/report.html", h.Admin.ExportHTML, staff)

	if h.Realtime != nil {
		mux.Handle("GET /ws/notifications", h.Realtime)
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.Tokens),
		dataloader.Middleware(deps.Profiles),
	)(mux)
}
