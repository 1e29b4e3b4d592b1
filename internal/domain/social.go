package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an immutable message attached to a request.
type Comment struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
	Author    *PublicProfile
}

// Notification is an inbox entry generated by a domain event.
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        NotificationType
	Title       string
	Message     string
	ReferenceID *uuid.UUID
	Read        bool
	CreatedAt   time.Time
}

// LedgerEntry records one balance mutation.
type LedgerEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Delta       int
	Reason      LedgerReason
	ReferenceID *uuid.UUID
	CreatedAt   time.Time
}

// Balance is the economy state of one user at a point in time.
type Balance struct {
	Points         int
	Level          Level
	NextLevel      *Level
	PointsToNext   int
	CanCheckIn     bool
	NextCheckInAt  *time.Time
	LastCheckInAt  *time.Time
	RequestsToday  int
	RequestsPerDay int
}
