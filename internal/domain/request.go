package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request is a points-backed ask for a document.
type Request struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Category    Category
	DOI         *string
	Urgent      bool
	Points      int
	Status      RequestStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	DecidedAt   *time.Time
}

// ComputeStatus derives the status a caller should observe at now. A stored
// terminal status always wins; an active request past its deadline reads as
// expired.
func ComputeStatus(r Request, now time.Time) RequestStatus {
	if r.Status != StatusActive {
		return r.Status
	}
	if !now.Before(r.ExpiresAt) {
		return StatusExpired
	}
	return StatusActive
}

// IsOpen reports whether the request still accepts responses and decisions.
func (r Request) IsOpen(now time.Time) bool {
	return ComputeStatus(r, now) == StatusActive
}

// IsDecided reports whether the owner already rated a response. Completed
// and closed requests are decided even after their deadline passes.
func (r Request) IsDecided() bool {
	return r.DecidedAt != nil || r.Status == StatusCompleted || r.Status == StatusClosed
}

// IsOwnedBy reports whether userID created the request.
func (r Request) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

// RequestStats are the engagement counters shown next to a request.
type RequestStats struct {
	Responses int
	Comments  int
	Likes     int
}

// RequestView is a request enriched for a specific viewer.
type RequestView struct {
	Request
	CurrentStatus RequestStatus
	Stats         RequestStats
	LikedByMe     bool
	SavedByMe     bool
	Owner         *PublicProfile
}

// RequestSort selects the listing order.
type RequestSort string

const (
	SortNewest RequestSort = "newest"
	SortPoints RequestSort = "points"
	SortUrgent RequestSort = "urgent"
)

func (s RequestSort) IsValid() bool {
	switch s {
	case SortNewest, SortPoints, SortUrgent:
		return true
	}
	return false
}

// RequestFilter narrows request listings. Zero values mean "any".
type RequestFilter struct {
	Category *Category
	Status   *RequestStatus
	OwnerID  *uuid.UUID
	Urgent   *bool
	Search   string
	Sort     RequestSort
	Limit    int
	Offset   int
}
