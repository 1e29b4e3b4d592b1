// Package quota implements the per-day request creation counter.
package quota

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo provides daily request counters backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quota repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Consume takes one slot of the user's quota for day and returns the new
// count. The check and the increment are a single statement, so concurrent
// callers can never push the count past limit. Returns
// domain.ErrQuotaExceeded when no slot is left.
func (r *Repo) Consume(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, error) {
	if limit <= 0 {
		return 0, domain.ErrQuotaExceeded
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := q.QueryRow(ctx,
		`INSERT INTO daily_request_counts AS d (user_id, day, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, day) DO UPDATE SET count = d.count + 1
		 WHERE d.count < $3
		 RETURNING d.count`,
		userID, dayOf(day), limit,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrQuotaExceeded
	}
	if err != nil {
		return 0, postgres.MapError(err, "daily_request_count", userID)
	}
	return count, nil
}

// Used returns how many requests the user created on day.
func (r *Repo) Used(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COALESCE((SELECT count FROM daily_request_counts WHERE user_id = $1 AND day = $2), 0)`,
		userID, dayOf(day),
	).Scan(&count)
	if err != nil {
		return 0, postgres.MapError(err, "daily_request_count", userID)
	}
	return count, nil
}

// dayOf truncates t to its UTC calendar date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
