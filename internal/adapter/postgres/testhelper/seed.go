package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/korima-app/korima-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a regular user with the default starting balance of 100.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return SeedUserWithPoints(t, pool, 100)
}

// SeedUserWithPoints creates a regular user holding the given balance.
func SeedUserWithPoints(t *testing.T, pool *pgxpool.Pool, points int) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		FullName:  "Test User " + suffix,
		Points:    points,
		Role:      domain.UserRoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, points, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, "$2a$04$seededhashseededhashseededhashseededhashseededhash", user.FullName,
		user.Points, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedRequest creates an active request owned by ownerID offering points.
// The owner's balance is not touched.
func SeedRequest(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, points int) domain.Request {
	t.Helper()
	return SeedRequestAt(t, pool, ownerID, points, time.Now().UTC())
}

// SeedRequestAt creates an active request whose creation time is createdAt and
// whose expiry is createdAt plus five days.
func SeedRequestAt(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, points int, createdAt time.Time) domain.Request {
	t.Helper()
	ctx := context.Background()

	createdAt = createdAt.UTC().Truncate(time.Microsecond)
	req := domain.Request{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     "Paper " + uniqueSuffix(),
		Category:  domain.CategoryMedicine,
		Points:    points,
		Status:    domain.StatusActive,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(5 * 24 * time.Hour),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO requests (id, owner_id, title, category, urgent, points, status, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.OwnerID, req.Title, string(req.Category), req.Urgent, req.Points,
		string(req.Status), req.CreatedAt, req.ExpiresAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRequest insert request: %v", err)
	}

	return req
}

// SeedLinkResponse creates an unrated link response valid for seven days.
func SeedLinkResponse(t *testing.T, pool *pgxpool.Pool, requestID, contributorID uuid.UUID) domain.Response {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	link := "https://example.org/" + uniqueSuffix() + ".pdf"
	resp := domain.Response{
		ID:            uuid.New(),
		RequestID:     requestID,
		ContributorID: contributorID,
		Kind:          domain.ResponseKindLink,
		LinkURL:       &link,
		Rating:        domain.RatingNone,
		CreatedAt:     now,
		ExpiresAt:     now.Add(7 * 24 * time.Hour),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO responses (id, request_id, contributor_id, kind, link_url, rating, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		resp.ID, resp.RequestID, resp.ContributorID, string(resp.Kind), resp.LinkURL,
		string(resp.Rating), resp.CreatedAt, resp.ExpiresAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLinkResponse insert response: %v", err)
	}

	return resp
}

// SeedFileResponse creates an unrated file response with the given blob key
// and expiry.
func SeedFileResponse(t *testing.T, pool *pgxpool.Pool, requestID, contributorID uuid.UUID, key string, expiresAt time.Time) domain.Response {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	name := "paper.pdf"
	resp := domain.Response{
		ID:            uuid.New(),
		RequestID:     requestID,
		ContributorID: contributorID,
		Kind:          domain.ResponseKindFile,
		FileKey:       &key,
		FileName:      &name,
		Rating:        domain.RatingNone,
		CreatedAt:     now,
		ExpiresAt:     expiresAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO responses (id, request_id, contributor_id, kind, file_key, file_name, rating, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		resp.ID, resp.RequestID, resp.ContributorID, string(resp.Kind), resp.FileKey, resp.FileName,
		string(resp.Rating), resp.CreatedAt, resp.ExpiresAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFileResponse insert response: %v", err)
	}

	return resp
}

// UserPoints reads the current balance of a user.
func UserPoints(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) int {
	t.Helper()

	var points int
	if err := pool.QueryRow(context.Background(), `SELECT points FROM users WHERE id = $1`, userID).Scan(&points); err != nil {
		t.Fatalf("testhelper: UserPoints: %v", err)
	}
	return points
}
