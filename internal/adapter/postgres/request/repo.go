// Package request implements the Request repository using PostgreSQL.
package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo provides request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const requestColumns = `r.id, r.owner_id, r.title, r.description, r.category, r.doi, r.urgent, r.points,
	r.status, r.created_at, r.expires_at, r.decided_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests r WHERE r.id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "request", id)
	}
	return req, nil
}

// GetForUpdate returns a request and locks its row until the surrounding
// transaction ends. Concurrent deciders on the same request queue here.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests r WHERE r.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, postgres.MapError(err, "request", id)
	}
	return req, nil
}

// List returns requests matching f and the total number of matches.
// A Status of expired selects active rows whose deadline has passed at now;
// a Status of active excludes them.
func (r *Repo) List(ctx context.Context, f domain.RequestFilter, now time.Time) ([]domain.Request, int, error) {
	where := filterWhere(f, now)
	return r.list(ctx, postgres.Builder().Select(requestColumns).From("requests r").Where(where), where, "requests r", f)
}

// ListSavedBy returns the requests userID saved, most recently saved first.
func (r *Repo) ListSavedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Request, int, error) {
	where := sq.Eq{"s.user_id": userID}
	base := postgres.Builder().
		Select(requestColumns).
		From("saved_requests s").
		Join("requests r ON r.id = s.request_id").
		Where(where)
	f := domain.RequestFilter{Limit: limit, Offset: offset}
	return r.list(ctx, base, where, "saved_requests s JOIN requests r ON r.id = s.request_id", f, "s.created_at DESC")
}

func (r *Repo) list(ctx context.Context, base sq.SelectBuilder, where sq.Sqlizer, from string, f domain.RequestFilter, order ...string) ([]domain.Request, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From(from).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count requests: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	if len(order) == 0 {
		order = sortColumns(f.Sort)
	}
	listSQL, listArgs, err := base.
		OrderBy(append(order, "r.id")...).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list requests: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Request, 0, f.Limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate requests: %w", err)
	}
	return out, total, nil
}

// Stats returns engagement counters for each id. Ids with no activity map to
// zero counters.
func (r *Repo) Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.RequestStats, error) {
	out := make(map[uuid.UUID]domain.RequestStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT r.id,
		        (SELECT count(*) FROM responses x WHERE x.request_id = r.id),
		        (SELECT count(*) FROM comments c WHERE c.request_id = r.id),
		        (SELECT count(*) FROM likes l WHERE l.request_id = r.id)
		 FROM requests r
		 WHERE r.id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query request stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			s  domain.RequestStats
		)
		if err := rows.Scan(&id, &s.Responses, &s.Comments, &s.Likes); err != nil {
			return nil, fmt.Errorf("scan request stats: %w", err)
		}
		out[id] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request stats: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new request and returns the persisted row.
func (r *Repo) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanRequest(q.QueryRow(ctx,
		`INSERT INTO requests AS r (owner_id, title, description, category, doi, urgent, points, status, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+requestColumns,
		req.OwnerID, req.Title, req.Description, string(req.Category), req.DOI, req.Urgent, req.Points,
		string(domain.StatusActive), req.CreatedAt, req.ExpiresAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "request", uuid.Nil)
	}
	return created, nil
}

// SetDecision moves an active request to a terminal status. Returns
// domain.ErrRequestNotActive if the row is no longer active.
func (r *Repo) SetDecision(ctx context.Context, id uuid.UUID, status domain.RequestStatus, decidedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE requests SET status = $2, decided_at = $3 WHERE id = $1 AND status = 'active'`,
		id, string(status), decidedAt,
	)
	if err != nil {
		return postgres.MapError(err, "request", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotActive
	}
	return nil
}

// Delete removes a request and, through cascades, its responses, comments,
// likes and saves.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "request", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func filterWhere(f domain.RequestFilter, now time.Time) sq.And {
	where := sq.And{}
	if f.Category != nil {
		where = append(where, sq.Eq{"r.category": string(*f.Category)})
	}
	if f.OwnerID != nil {
		where = append(where, sq.Eq{"r.owner_id": *f.OwnerID})
	}
	if f.Urgent != nil {
		where = append(where, sq.Eq{"r.urgent": *f.Urgent})
	}
	if f.Status != nil {
		switch *f.Status {
		case domain.StatusActive:
			where = append(where, sq.Eq{"r.status": string(domain.StatusActive)}, sq.Gt{"r.expires_at": now})
		case domain.StatusExpired:
			where = append(where, sq.Eq{"r.status": string(domain.StatusActive)}, sq.LtOrEq{"r.expires_at": now})
		default:
			where = append(where, sq.Eq{"r.status": string(*f.Status)})
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := postgres.Like(s)
		where = append(where, sq.Or{
			sq.ILike{"r.title": pattern},
			sq.ILike{"r.description": pattern},
			sq.ILike{"r.doi": pattern},
		})
	}
	return where
}

func sortColumns(s domain.RequestSort) []string {
	switch s {
	case domain.SortPoints:
		return []string{"r.points DESC", "r.created_at DESC"}
	case domain.SortUrgent:
		return []string{"r.urgent DESC", "r.created_at DESC"}
	default:
		return []string{"r.created_at DESC"}
	}
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var (
		req      domain.Request
		category string
		status   string
	)
	err := row.Scan(&req.ID, &req.OwnerID, &req.Title, &req.Description, &category, &req.DOI, &req.Urgent,
		&req.Points, &status, &req.CreatedAt, &req.ExpiresAt, &req.DecidedAt)
	if err != nil {
		return nil, err
	}
	req.Category = domain.Category(category)
	req.Status = domain.RequestStatus(status)
	return &req, nil
}
