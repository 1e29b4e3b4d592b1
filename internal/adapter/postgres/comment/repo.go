// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a comment and returns the persisted row.
func (r *Repo) Create(ctx context.Context, requestID, authorID uuid.UUID, body string) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c := domain.Comment{RequestID: requestID, AuthorID: authorID, Body: body}
	err := q.QueryRow(ctx,
		`INSERT INTO comments (request_id, author_id, body) VALUES ($1, $2, $3) RETURNING id, created_at`,
		requestID, authorID, body,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "comment", requestID)
	}
	return &c, nil
}

// ListByRequest returns the comments of a request oldest first.
func (r *Repo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, request_id, author_id, body, created_at
		 FROM comments
		 WHERE request_id = $1
		 ORDER BY created_at, id`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.RequestID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}
