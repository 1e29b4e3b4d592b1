// Package auth signs and verifies the tokens Korima hands out: short-lived
// access JWTs, opaque refresh tokens and signed download links.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid token")

// Token purposes live in the "use" claim; a download token never passes as
// an access token and vice versa.
const (
	useAccess = "access"
	useFile   = "file"
)

const refreshTokenBytes = 32

// JWTManager issues and verifies HS256 tokens for one issuer.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	parser    *jwt.Parser
}

// NewJWTManager creates a JWTManager. secret should be at least 32 bytes.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// claims is shared by both token kinds. Role is set on access tokens, Key on
// file tokens.
type claims struct {
	jwt.RegisteredClaims
	Use  string `json:"use"`
	Role string `json:"role,omitempty"`
	Key  string `json:"key,omitempty"`
}

func (m *JWTManager) sign(subject uuid.UUID, expiresAt time.Time, c claims) (string, error) {
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", c.Use, err)
	}
	return signed, nil
}

// verify checks signature, issuer, expiry and purpose, and returns the claims
// with the subject parsed.
func (m *JWTManager) verify(tokenString, use string) (*claims, uuid.UUID, error) {
	if tokenString == "" {
		return nil, uuid.Nil, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	var c claims
	if _, err := m.parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if c.Use != use {
		return nil, uuid.Nil, fmt.Errorf("%w: not a %s token", ErrInvalidToken, use)
	}

	subject, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return &c, subject, nil
}

// GenerateAccessToken signs an access token for userID carrying role.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	return m.sign(userID, time.Now().Add(m.accessTTL), claims{Use: useAccess, Role: role})
}

// ValidateAccessToken returns the user ID and role of a valid access token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	c, userID, err := m.verify(tokenString, useAccess)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, c.Role, nil
}

// GenerateRefreshToken returns a random URL-safe token for the client and
// its hash for storage.
func (m *JWTManager) GenerateRefreshToken() (raw string, hash string, err error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashToken(raw), nil
}

// HashToken is the hex SHA-256 of raw. Refresh tokens are stored only in
// this form.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
