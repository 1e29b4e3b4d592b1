package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account together with its public profile and economy state.
type User struct {
	ID            uuid.UUID
	Email         string
	FullName      string
	AvatarURL     *string
	Country       *string
	Institution   *string
	Specialty     *string
	Bio           *string
	Website       *string
	Points        int
	LastCheckInAt *time.Time
	Role          UserRole
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Level is derived from the current balance.
func (u User) Level() Level {
	return LevelForPoints(u.Points)
}

// CanCheckIn reports whether a check-in at now would be accepted.
func (u User) CanCheckIn(now time.Time, cooldown time.Duration) bool {
	if u.LastCheckInAt == nil {
		return true
	}
	return !now.Before(u.LastCheckInAt.Add(cooldown))
}

// NextCheckInAt returns when the cooldown ends, or nil if already eligible.
func (u User) NextCheckInAt(now time.Time, cooldown time.Duration) *time.Time {
	if u.CanCheckIn(now, cooldown) {
		return nil
	}
	next := u.LastCheckInAt.Add(cooldown)
	return &next
}

// Public returns the projection other users are allowed to see.
func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		FullName:    u.FullName,
		AvatarURL:   u.AvatarURL,
		Level:       u.Level(),
		Institution: u.Institution,
	}
}

// PublicProfile is the small projection shown next to requests, responses
// and comments.
type PublicProfile struct {
	ID          uuid.UUID
	FullName    string
	AvatarURL   *string
	Level       Level
	Institution *string
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// ProfileUpdate carries the editable profile fields. A nil field is left
// untouched; an empty string clears the optional ones.
type ProfileUpdate struct {
	FullName    *string
	AvatarURL   *string
	Country     *string
	Institution *string
	Specialty   *string
	Bio         *string
	Website     *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.AvatarURL == nil && p.Country == nil &&
		p.Institution == nil && p.Specialty == nil && p.Bio == nil && p.Website == nil
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Search string
	Role   *UserRole
	Limit  int
	Offset int
}
