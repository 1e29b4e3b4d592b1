// Package response implements the Response repository using PostgreSQL.
package response

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo provides response persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new response repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const responseColumns = `id, request_id, contributor_id, kind, file_key, file_name, link_url, message,
	rating, rated_at, created_at, expires_at`

// GetByID returns a response by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Response, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	resp, err := scanResponse(q.QueryRow(ctx, `SELECT `+responseColumns+` FROM responses WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "response", id)
	}
	return resp, nil
}

// ListByRequest returns the responses of a request in submission order.
func (r *Repo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+responseColumns+` FROM responses WHERE request_id = $1 ORDER BY created_at, id`, requestID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := []domain.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, *resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

// HasDecision reports whether any response of the request has been rated.
func (r *Repo) HasDecision(ctx context.Context, requestID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var decided bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM responses WHERE request_id = $1 AND rating <> 'none')`, requestID,
	).Scan(&decided)
	if err != nil {
		return false, postgres.MapError(err, "response", requestID)
	}
	return decided, nil
}

// Create inserts a new response and returns the persisted row.
func (r *Repo) Create(ctx context.Context, resp *domain.Response) (*domain.Response, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanResponse(q.QueryRow(ctx,
		`INSERT INTO responses (request_id, contributor_id, kind, file_key, file_name, link_url, message, rating, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'none', $8, $9)
		 RETURNING `+responseColumns,
		resp.RequestID, resp.ContributorID, string(resp.Kind), resp.FileKey, resp.FileName, resp.LinkURL,
		resp.Message, resp.CreatedAt, resp.ExpiresAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "response", uuid.Nil)
	}
	return created, nil
}

// SetRating records the owner's decision on an unrated response. A second
// best answer on the same request is rejected by a partial unique index and
// reported as domain.ErrAlreadyDecided, as is rating an already rated row.
func (r *Repo) SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating, ratedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE responses SET rating = $2, rated_at = $3 WHERE id = $1 AND rating = 'none'`,
		id, string(rating), ratedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyDecided
		}
		return postgres.MapError(err, "response", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyDecided
	}
	return nil
}

// ShortenExpiry caps every response of the request at cutoff.
func (r *Repo) ShortenExpiry(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE responses SET expires_at = $2 WHERE request_id = $1 AND expires_at > $2`,
		requestID, cutoff,
	)
	if err != nil {
		return 0, postgres.MapError(err, "response", requestID)
	}
	return int(tag.RowsAffected()), nil
}

// ListExpiredFiles returns up to limit responses that still reference a blob
// and expired before now, oldest first.
func (r *Repo) ListExpiredFiles(ctx context.Context, now time.Time, limit int) ([]domain.ExpiredFile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, file_key, expires_at
		 FROM responses
		 WHERE file_key IS NOT NULL AND expires_at < $1
		 ORDER BY expires_at
		 LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list expired files: %w", err)
	}
	defer rows.Close()

	out := []domain.ExpiredFile{}
	for rows.Next() {
		var f domain.ExpiredFile
		if err := rows.Scan(&f.ResponseID, &f.FileKey, &f.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan expired file: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired files: %w", err)
	}
	return out, nil
}

// ClearFile drops the blob reference of a response, keeping the row.
func (r *Repo) ClearFile(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `UPDATE responses SET file_key = NULL, file_name = NULL WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "response", id)
	}
	return nil
}

func scanResponse(row pgx.Row) (*domain.Response, error) {
	var (
		resp   domain.Response
		kind   string
		rating string
	)
	err := row.Scan(&resp.ID, &resp.RequestID, &resp.ContributorID, &kind, &resp.FileKey, &resp.FileName,
		&resp.LinkURL, &resp.Message, &rating, &resp.RatedAt, &resp.CreatedAt, &resp.ExpiresAt)
	if err != nil {
		return nil, err
	}
	resp.Kind = domain.ResponseKind(kind)
	resp.Rating = domain.Rating(rating)
	return &resp, nil
}
