package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

type adminService interface {
	Stats(ctx context.Context) (domain.AdminStats, error)
	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error)
	SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
}

type analyticsService interface {
	Overview(ctx context.Context) (*domain.AnalyticsOverview, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportHTML(ctx context.Context, w io.Writer) error
}

// AdminHandler serves the staff dashboard, user management and analytics.
type AdminHandler struct {
	admin     adminService
	analytics analyticsService
	log       *slog.Logger
	now       func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin adminService, analytics analyticsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		analytics: analytics,
		log:       logger.With("handler", "admin"),
		now:       time.Now,
	}
}

type adminStatsDTO struct {
	Users         int `json:"users"`
	Requests      int `json:"requests"`
	Responses     int `json:"responses"`
	Comments      int `json:"comments"`
	Likes         int `json:"likes"`
	UsersToday    int `json:"users_today"`
	RequestsToday int `json:"requests_today"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, adminStatsDTO(st))
}

// Users handles GET /admin/users?search=&role=&limit=&offset=.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	f := domain.UserFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := r.URL.Query().Get("role"); v != "" {
		role := domain.UserRole(v)
		f.Role = &role
	}

	users, total, err := h.admin.ListUsers(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	items := make([]userDTO, len(users))
	for i := range users {
		items[i] = toUserDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, listResponse[userDTO]{Items: items, Total: total})
}

// SetRole handles PUT /admin/users/{id}/role.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req setRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.admin.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// Analytics handles GET /admin/analytics.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	o, err := h.analytics.Overview(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyticsDTO(o))
}

// ExportCSV handles GET /admin/analytics/export.csv.
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.analytics.ExportCSV, "text/csv; charset=utf-8", "attachment", "csv")
}

// ExportHTML handles GET /admin/analytics/report.html.
func (h *AdminHandler) ExportHTML(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.analytics.ExportHTML, "text/html; charset=utf-8", "inline", "html")
}

// export renders into memory first so a failure can still become a JSON
// error instead of a truncated download.
func (h *AdminHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	render func(context.Context, io.Writer) error,
	contentType, disposition, ext string,
) {
	var buf bytes.Buffer
	if err := render(r.Context(), &buf); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	name := "reporte-analitico-" + h.now().UTC().Format("2006-01-02") + "." + ext
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": name}))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck
}

// ---------------------------------------------------------------------------
// Analytics DTO
// ---------------------------------------------------------------------------

type analyticsDTO struct {
	GeneratedAt            time.Time          `json:"generated_at"`
	Totals                 analyticsTotalsDTO `json:"totals"`
	ResolutionRate         float64            `json:"resolution_rate"`
	AvgResponsesPerRequest float64            `json:"avg_responses_per_request"`
	BestAnswerRate         float64            `json:"best_answer_rate"`
	AvgCommentsPerRequest  float64            `json:"avg_comments_per_request"`
	AvgPointsPerUser       float64            `json:"avg_points_per_user"`
	UrgentResolutionRate   float64            `json:"urgent_resolution_rate"`
	NormalResolutionRate   float64            `json:"normal_resolution_rate"`
	Categories             []categoryDTO      `json:"categories"`
	Levels                 []levelDTO         `json:"levels"`
	TopContributors        []contributorDTO   `json:"top_contributors"`
	Monthly                []monthlyDTO       `json:"monthly"`
}

type analyticsTotalsDTO struct {
	Users               int `json:"users"`
	Requests            int `json:"requests"`
	Completed           int `json:"completed"`
	Closed              int `json:"closed"`
	Active              int `json:"active"`
	Responses           int `json:"responses"`
	BestAnswers         int `json:"best_answers"`
	Comments            int `json:"comments"`
	Likes               int `json:"likes"`
	Urgent              int `json:"urgent"`
	UrgentResolved      int `json:"urgent_resolved"`
	WithDOI             int `json:"with_doi"`
	PointsInCirculation int `json:"points_in_circulation"`
}

type categoryDTO struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Resolved int    `json:"resolved"`
}

type levelDTO struct {
	Level string `json:"level"`
	Users int    `json:"users"`
}

type contributorDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Points      int       `json:"points"`
	BestAnswers int       `json:"best_answers"`
}

type monthlyDTO struct {
	Month    string `json:"month"`
	Requests int    `json:"requests"`
	Resolved int    `json:"resolved"`
}

func toAnalyticsDTO(o *domain.AnalyticsOverview) analyticsDTO {
	dto := analyticsDTO{
		GeneratedAt:            o.GeneratedAt,
		Totals:                 analyticsTotalsDTO(o.Totals),
		ResolutionRate:         o.ResolutionRate,
		AvgResponsesPerRequest: o.AvgResponsesPerRequest,
		BestAnswerRate:         o.BestAnswerRate,
		AvgCommentsPerRequest:  o.AvgCommentsPerRequest,
		AvgPointsPerUser:       o.AvgPointsPerUser,
		UrgentResolutionRate:   o.UrgentResolutionRate,
		NormalResolutionRate:   o.NormalResolutionRate,
		Categories:             make([]categoryDTO, len(o.Categories)),
		Levels:                 make([]levelDTO, len(o.Levels)),
		TopContributors:        make([]contributorDTO, len(o.TopContributors)),
		Monthly:                make([]monthlyDTO, len(o.Monthly)),
	}
	for i, c := range o.Categories {
		dto.Categories[i] = categoryDTO{Category: c.Category.String(), Total: c.Total, Resolved: c.Resolved}
	}
	for i, l := range o.Levels {
		dto.Levels[i] = levelDTO{Level: l.Level.String(), Users: l.Users}
	}
	for i, c := range o.TopContributors {
		dto.TopContributors[i] = contributorDTO(c)
	}
	for i, m := range o.Monthly {
		dto.Monthly[i] = monthlyDTO{Month: m.Month.Format("2006-01"), Requests: m.Requests, Resolved: m.Resolved}
	}
	return dto
}
