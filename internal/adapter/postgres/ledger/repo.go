// Package ledger implements the append-only point ledger using PostgreSQL.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Append records one balance mutation. ID and CreatedAt are filled from the
// database.
func (r *Repo) Append(ctx context.Context, e *domain.LedgerEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx,
		`INSERT INTO point_ledger (user_id, delta, reason, reference_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.Delta, string(e.Reason), e.ReferenceID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "point_ledger", e.UserID)
	}
	return nil
}

// ListByUser returns the user's ledger newest first, plus the total count.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM point_ledger WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT id, user_id, delta, reason, reference_id, created_at
		 FROM point_ledger
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LedgerEntry, 0, limit)
	for rows.Next() {
		var (
			e      domain.LedgerEntry
			reason string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &reason, &e.ReferenceID, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan ledger: %w", err)
		}
		e.Reason = domain.LedgerReason(reason)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ledger: %w", err)
	}
	return out, total, nil
}

// SumByUser returns the net of every entry for the user.
func (r *Repo) SumByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var sum int
	if err := q.QueryRow(ctx, `SELECT COALESCE(sum(delta), 0) FROM point_ledger WHERE user_id = $1`, userID).Scan(&sum); err != nil {
		return 0, postgres.MapError(err, "point_ledger", userID)
	}
	return sum, nil
}
