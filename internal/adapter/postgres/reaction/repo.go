// Package reaction implements likes and saves, the two (user, request)
// membership relations, using PostgreSQL.
package reaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
)

// Repo provides like and save persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reaction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	tableLikes = "likes"
	tableSaves = "saved_requests"
)

// ToggleLike flips the like of userID on requestID and reports whether the
// request is liked afterwards.
func (r *Repo) ToggleLike(ctx context.Context, userID, requestID uuid.UUID) (bool, error) {
	return r.toggle(ctx, tableLikes, userID, requestID)
}

// ToggleSave flips the bookmark of userID on requestID and reports whether
// the request is saved afterwards.
func (r *Repo) ToggleSave(ctx context.Context, userID, requestID uuid.UUID) (bool, error) {
	return r.toggle(ctx, tableSaves, userID, requestID)
}

// LikedBy returns the subset of requestIDs userID has liked.
func (r *Repo) LikedBy(ctx context.Context, userID uuid.UUID, requestIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.members(ctx, tableLikes, userID, requestIDs)
}

// SavedBy returns the subset of requestIDs userID has saved.
func (r *Repo) SavedBy(ctx context.Context, userID uuid.UUID, requestIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.members(ctx, tableSaves, userID, requestIDs)
}

// toggle deletes the pair if present, otherwise inserts it. A concurrent
// insert of the same pair is absorbed by ON CONFLICT.
func (r *Repo) toggle(ctx context.Context, table string, userID, requestID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1 AND request_id = $2`, userID, requestID)
	if err != nil {
		return false, postgres.MapError(err, table, requestID)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = q.Exec(ctx,
		`INSERT INTO `+table+` (user_id, request_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, requestID,
	)
	if err != nil {
		return false, postgres.MapError(err, table, requestID)
	}
	return true, nil
}

func (r *Repo) members(ctx context.Context, table string, userID uuid.UUID, requestIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(requestIDs))
	if userID == uuid.Nil || len(requestIDs) == 0 {
		return out, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT request_id FROM `+table+` WHERE user_id = $1 AND request_id = ANY($2)`,
		userID, requestIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
