package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/provider"
	"github.com/korima-app/korima-backend/internal/service/metadata"
	"github.com/korima-app/korima-backend/internal/service/request"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type profileDTO struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Level       string    `json:"level"`
	Institution *string   `json:"institution,omitempty"`
}

func toProfileDTO(p *domain.PublicProfile) *profileDTO {
	if p == nil {
		return nil
	}
	return &profileDTO{
		ID:          p.ID,
		FullName:    p.FullName,
		AvatarURL:   p.AvatarURL,
		Level:       p.Level.String(),
		Institution: p.Institution,
	}
}

type userDTO struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	Country       *string    `json:"country,omitempty"`
	Institution   *string    `json:"institution,omitempty"`
	Specialty     *string    `json:"specialty,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	Website       *string    `json:"website,omitempty"`
	Points        int        `json:"points"`
	Level         string     `json:"level"`
	Role          string     `json:"role"`
	LastCheckInAt *time.Time `json:"last_checkin_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		Country:       u.Country,
		Institution:   u.Institution,
		Specialty:     u.Specialty,
		Bio:           u.Bio,
		Website:       u.Website,
		Points:        u.Points,
		Level:         u.Level().String(),
		Role:          u.Role.String(),
		LastCheckInAt: u.LastCheckInAt,
		CreatedAt:     u.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

type balanceDTO struct {
	Points         int        `json:"points"`
	Level          string     `json:"level"`
	NextLevel      *string    `json:"next_level,omitempty"`
	PointsToNext   int        `json:"points_to_next"`
	CanCheckIn     bool       `json:"can_checkin"`
	NextCheckInAt  *time.Time `json:"next_checkin_at,omitempty"`
	LastCheckInAt  *time.Time `json:"last_checkin_at,omitempty"`
	RequestsToday  int        `json:"requests_today"`
	RequestsPerDay int        `json:"requests_per_day"`
}

func toBalanceDTO(b *domain.Balance) balanceDTO {
	dto := balanceDTO{
		Points:         b.Points,
		Level:          b.Level.String(),
		PointsToNext:   b.PointsToNext,
		CanCheckIn:     b.CanCheckIn,
		NextCheckInAt:  b.NextCheckInAt,
		LastCheckInAt:  b.LastCheckInAt,
		RequestsToday:  b.RequestsToday,
		RequestsPerDay: b.RequestsPerDay,
	}
	if b.NextLevel != nil {
		next := b.NextLevel.String()
		dto.NextLevel = &next
	}
	return dto
}

type ledgerDTO struct {
	ID          uuid.UUID  `json:"id"`
	Delta       int        `json:"delta"`
	Reason      string     `json:"reason"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toLedgerDTO(e domain.LedgerEntry) ledgerDTO {
	return ledgerDTO{
		ID:          e.ID,
		Delta:       e.Delta,
		Reason:      e.Reason.String(),
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Requests and responses
// ---------------------------------------------------------------------------

type statsDTO struct {
	Responses int `json:"responses"`
	Comments  int `json:"comments"`
	Likes     int `json:"likes"`
}

type requestDTO struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Owner       *profileDTO `json:"owner,omitempty"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	Category    string      `json:"category"`
	DOI         *string     `json:"doi,omitempty"`
	Urgent      bool        `json:"urgent"`
	Points      int         `json:"points"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
	DecidedAt   *time.Time  `json:"decided_at,omitempty"`
	Stats       *statsDTO   `json:"stats,omitempty"`
	LikedByMe   bool        `json:"liked_by_me"`
	SavedByMe   bool        `json:"saved_by_me"`
}

// toRequestDTO renders a bare request, as returned right after creation.
func toRequestDTO(r *domain.Request, now time.Time) requestDTO {
	return requestDTO{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category.String(),
		DOI:         r.DOI,
		Urgent:      r.Urgent,
		Points:      r.Points,
		Status:      domain.ComputeStatus(*r, now).String(),
		CreatedAt:   r.CreatedAt,
		ExpiresAt:   r.ExpiresAt,
		DecidedAt:   r.DecidedAt,
	}
}

func toRequestViewDTO(v domain.RequestView) requestDTO {
	dto := toRequestDTO(&v.Request, time.Time{})
	dto.Status = v.CurrentStatus.String()
	dto.Owner = toProfileDTO(v.Owner)
	dto.Stats = &statsDTO{Responses: v.Stats.Responses, Comments: v.Stats.Comments, Likes: v.Stats.Likes}
	dto.LikedByMe = v.LikedByMe
	dto.SavedByMe = v.SavedByMe
	return dto
}

type responseDTO struct {
	ID             uuid.UUID   `json:"id"`
	RequestID      uuid.UUID   `json:"request_id"`
	ContributorID  uuid.UUID   `json:"contributor_id"`
	Contributor    *profileDTO `json:"contributor,omitempty"`
	Kind           string      `json:"kind"`
	LinkURL        *string     `json:"link_url,omitempty"`
	FileName       *string     `json:"file_name,omitempty"`
	Message        *string     `json:"message,omitempty"`
	Rating         string      `json:"rating"`
	RatedAt        *time.Time  `json:"rated_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	ExpiresAt      time.Time   `json:"expires_at"`
	PayloadVisible bool        `json:"payload_visible"`
	FileAvailable  bool        `json:"file_available"`
}

func toResponseDTO(r *domain.Response) responseDTO {
	return responseDTO{
		ID:            r.ID,
		RequestID:     r.RequestID,
		ContributorID: r.ContributorID,
		Kind:          r.Kind.String(),
		LinkURL:       r.LinkURL,
		FileName:      r.FileName,
		Message:       r.Message,
		Rating:        r.Rating.String(),
		RatedAt:       r.RatedAt,
		CreatedAt:     r.CreatedAt,
		ExpiresAt:     r.ExpiresAt,
	}
}

func toResponseViewDTO(v domain.ResponseView) responseDTO {
	dto := toResponseDTO(&v.Response)
	dto.Contributor = toProfileDTO(v.Contributor)
	dto.PayloadVisible = v.PayloadVisible
	dto.FileAvailable = v.FileAvailable
	return dto
}

type decisionDTO struct {
	Request  requestDTO  `json:"request"`
	Response responseDTO `json:"response"`
	Credited int         `json:"credited"`
}

type fileLinkDTO struct {
	URL       string    `json:"url"`
	FileName  string    `json:"file_name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toFileLinkDTO(l *request.FileLink) fileLinkDTO {
	return fileLinkDTO{URL: l.URL, FileName: l.FileName, ExpiresAt: l.ExpiresAt}
}

// ---------------------------------------------------------------------------
// Social
// ---------------------------------------------------------------------------

type commentDTO struct {
	ID        uuid.UUID   `json:"id"`
	RequestID uuid.UUID   `json:"request_id"`
	AuthorID  uuid.UUID   `json:"author_id"`
	Author    *profileDTO `json:"author,omitempty"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
}

func toCommentDTO(c domain.Comment) commentDTO {
	return commentDTO{
		ID:        c.ID,
		RequestID: c.RequestID,
		AuthorID:  c.AuthorID,
		Author:    toProfileDTO(c.Author),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

type notificationDTO struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toNotificationDTO(n domain.Notification) notificationDTO {
	return notificationDTO{
		ID:          n.ID,
		Type:        n.Type.String(),
		Title:       n.Title,
		Message:     n.Message,
		ReferenceID: n.ReferenceID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Metadata
// ---------------------------------------------------------------------------

type workDTO struct {
	DOI       string   `json:"doi"`
	Title     string   `json:"title"`
	Authors   string   `json:"authors"`
	Year      *int     `json:"year,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
}

func toWorkDTO(w provider.Work) workDTO {
	return workDTO{
		DOI:       w.DOI,
		Title:     w.Title,
		Authors:   w.Authors,
		Year:      w.Year,
		Journal:   w.Journal,
		Publisher: w.Publisher,
		Subjects:  w.Subjects,
		Abstract:  w.Abstract,
	}
}

type openAccessDTO struct {
	DOI      string `json:"doi"`
	IsOpen   bool   `json:"is_open"`
	URL      string `json:"url,omitempty"`
	Version  string `json:"version,omitempty"`
	HostType string `json:"host_type,omitempty"`
}

func toOpenAccessDTO(oa *provider.OpenAccess) *openAccessDTO {
	if oa == nil {
		return nil
	}
	return &openAccessDTO{
		DOI:      oa.DOI,
		IsOpen:   oa.IsOpen,
		URL:      oa.URL,
		Version:  oa.Version,
		HostType: oa.HostType,
	}
}

type prefillDTO struct {
	Work              workDTO        `json:"work"`
	SuggestedCategory string         `json:"suggested_category"`
	OpenAccess        *openAccessDTO `json:"open_access,omitempty"`
}

func toPrefillDTO(p *metadata.Prefill) prefillDTO {
	return prefillDTO{
		Work:              toWorkDTO(p.Work),
		SuggestedCategory: p.SuggestedCategory.String(),
		OpenAccess:        toOpenAccessDTO(p.OpenAccess),
	}
}
