package domain

import (
	"time"

	"github.com/google/uuid"
)

// Response is a contribution toward a request: exactly one of an uploaded
// file or an external link.
type Response struct {
	ID            uuid.UUID
	RequestID     uuid.UUID
	ContributorID uuid.UUID
	Kind          ResponseKind
	FileKey       *string
	FileName      *string
	LinkURL       *string
	Message       *string
	Rating        Rating
	RatedAt       *time.Time
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// IsExpired reports whether the payload retention window has closed.
// The boundary instant counts as expired.
func (r Response) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// HasStoredFile reports whether a blob is still referenced.
func (r Response) HasStoredFile() bool {
	return r.Kind == ResponseKindFile && r.FileKey != nil && *r.FileKey != ""
}

// CanViewPayload decides whether viewer may see the link or fetch the file.
// Only the request owner and the contributor qualify, and only while the
// response has not expired.
func (r Response) CanViewPayload(viewer, requestOwner uuid.UUID, now time.Time) bool {
	if viewer == uuid.Nil {
		return false
	}
	if viewer != requestOwner && viewer != r.ContributorID {
		return false
	}
	return !r.IsExpired(now)
}

// DecisionExpiry returns the shortened expiry applied to every response of a
// request once the owner decides: the earlier of the current expiry and
// decidedAt plus retention.
func DecisionExpiry(current, decidedAt time.Time, retention time.Duration) time.Time {
	cutoff := decidedAt.Add(retention)
	if current.Before(cutoff) {
		return current
	}
	return cutoff
}

// ResponseView is a response as rendered for a given viewer; payload fields
// are blanked when the viewer lacks visibility.
type ResponseView struct {
	Response
	PayloadVisible bool
	FileAvailable  bool
	Contributor    *PublicProfile
}

// ExpiredFile is a response row still pointing at a blob past its expiry.
type ExpiredFile struct {
	ResponseID uuid.UUID
	FileKey    string
	ExpiresAt  time.Time
}

// CleanupReport summarises one sweep of expired files.
type CleanupReport struct {
	Total   int
	Deleted int
	Errors  []string
}
