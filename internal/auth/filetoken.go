package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileGrant is what a download token authorises: one blob of one response
// until ExpiresAt.
type FileGrant struct {
	ResponseID uuid.UUID
	Key        string
	ExpiresAt  time.Time
}

// SignFileToken issues a download token for the blob at key.
func (m *JWTManager) SignFileToken(responseID uuid.UUID, key string, expiresAt time.Time) (string, error) {
	return m.sign(responseID, expiresAt, claims{Use: useFile, Key: key})
}

// ParseFileToken verifies a download token and returns its grant.
func (m *JWTManager) ParseFileToken(tokenString string) (FileGrant, error) {
	c, responseID, err := m.verify(tokenString, useFile)
	if err != nil {
		return FileGrant{}, err
	}
	if c.Key == "" {
		return FileGrant{}, fmt.Errorf("%w: missing key", ErrInvalidToken)
	}
	return FileGrant{ResponseID: responseID, Key: c.Key, ExpiresAt: c.ExpiresAt.Time}, nil
}
