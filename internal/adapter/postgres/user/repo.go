// Package user implements the User repository using PostgreSQL.
// It owns the balance columns, so every point mutation goes through here.
package user

import (
	"context"
	"errors"
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

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, full_name, avatar_url, country, institution, specialty, bio, website,
	points, last_checkin_at, role, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email address, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetCredentials returns the user and its bcrypt hash for password login.
// Users without a password get an empty hash.
func (r *Repo) GetCredentials(ctx context.Context, email string) (*domain.User, string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var hash *string
	row := q.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row, &hash)
	if err != nil {
		return nil, "", postgres.MapError(err, "user", uuid.Nil)
	}
	if hash == nil {
		return u, "", nil
	}
	return u, *hash, nil
}

// GetByIDs returns the users found among ids, in no particular order.
// Missing ids are silently skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query users by ids: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// List returns users matching the filter ordered by created_at DESC, plus the
// total number of matches.
func (r *Repo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := postgres.Like(s)
		where = append(where, sq.Or{
			sq.ILike{"full_name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"institution": pattern},
		})
	}
	if f.Role != nil {
		where = append(where, sq.Eq{"role": string(*f.Role)})
	}

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count users: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(userColumns).
		From("users").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, f.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return users, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user with the given bcrypt hash and returns the
// persisted row. Points and Role are taken from u.
func (r *Repo) Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	role := u.Role
	if role == "" {
		role = domain.UserRoleUser
	}

	created, err := scanUser(q.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, full_name, points, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.Email, passwordHash, u.FullName, u.Points, string(role),
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return created, nil
}

// UpdateProfile applies the non-nil fields of p. Empty strings clear the
// optional columns.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, p domain.ProfileUpdate) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().Update("users").Set("updated_at", sq.Expr("now()"))
	if p.FullName != nil {
		b = b.Set("full_name", *p.FullName)
	}
	optional := []struct {
		col string
		val *string
	}{
		{"avatar_url", p.AvatarURL},
		{"country", p.Country},
		{"institution", p.Institution},
		{"specialty", p.Specialty},
		{"bio", p.Bio},
		{"website", p.Website},
	}
	for _, o := range optional {
		if o.val == nil {
			continue
		}
		if *o.val == "" {
			b = b.Set(o.col, nil)
		} else {
			b = b.Set(o.col, *o.val)
		}
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// SetRole changes the role of a user.
func (r *Repo) SetRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		id, string(role),
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// SetRoleByEmail changes the role of the user with the given email.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE lower(email) = lower($1) RETURNING `+userColumns,
		email, string(role),
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// ---------------------------------------------------------------------------
// Balance operations
// ---------------------------------------------------------------------------

// Debit subtracts points only if the balance covers them. Returns
// domain.ErrInsufficientPoints otherwise, leaving the balance untouched.
func (r *Repo) Debit(ctx context.Context, id uuid.UUID, points int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var balance int
	err := q.QueryRow(ctx,
		`UPDATE users SET points = points - $2, updated_at = now()
		 WHERE id = $1 AND points >= $2
		 RETURNING points`,
		id, points,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		if err := r.ensureExists(ctx, q, id); err != nil {
			return 0, err
		}
		return 0, domain.ErrInsufficientPoints
	}
	if err != nil {
		return 0, postgres.MapError(err, "user", id)
	}
	return balance, nil
}

// Credit adds points to a balance and returns the new balance.
func (r *Repo) Credit(ctx context.Context, id uuid.UUID, points int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var balance int
	err := q.QueryRow(ctx,
		`UPDATE users SET points = points + $2, updated_at = now() WHERE id = $1 RETURNING points`,
		id, points,
	).Scan(&balance)
	if err != nil {
		return 0, postgres.MapError(err, "user", id)
	}
	return balance, nil
}

// CheckIn credits reward and stamps last_checkin_at = now, but only when the
// previous check-in is at least cooldown old. Returns
// domain.ErrAlreadyCheckedIn when the user is still on cooldown.
func (r *Repo) CheckIn(ctx context.Context, id uuid.UUID, reward int, now time.Time, cooldown time.Duration) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx,
		`UPDATE users SET points = points + $2, last_checkin_at = $3, updated_at = now()
		 WHERE id = $1 AND (last_checkin_at IS NULL OR last_checkin_at <= $4)
		 RETURNING `+userColumns,
		id, reward, now, now.Add(-cooldown),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		if err := r.ensureExists(ctx, q, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

func (r *Repo) ensureExists(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return postgres.MapError(err, "user", id)
	}
	if !exists {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

// scanUser reads userColumns followed by any extra destinations.
func scanUser(row pgx.Row, extra ...any) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	dest := []any{
		&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Country, &u.Institution, &u.Specialty,
		&u.Bio, &u.Website, &u.Points, &u.LastCheckInAt, &role, &u.CreatedAt, &u.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
