// Package token stores hashed refresh tokens.
package token

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

const entity = "refresh_token"

// Repo persists refresh tokens in the refresh_tokens table. Only the SHA-256
// hash of a token is ever stored.
type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tokenColumns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

func scanToken(row pgx.Row) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts token and fills ID and CreatedAt.
func (r *Repo) Create(ctx context.Context, token *domain.RefreshToken) error {
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		token.UserID, token.TokenHash, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return postgres.MapError(err, entity, token.UserID)
	}
	return nil
}

// Consume revokes the active token with tokenHash and returns it. Of two
// concurrent calls with the same hash only one succeeds; the other gets
// domain.ErrNotFound, as do unknown, revoked and expired tokens.
func (r *Repo) Consume(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, err := scanToken(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`UPDATE refresh_tokens
		    SET revoked_at = now()
		  WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > now()
		 RETURNING `+tokenColumns,
		tokenHash,
	))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return t, nil
}

// GetByHash returns the token with tokenHash whatever its state, so callers
// can tell a replayed token from an unknown one.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, err := scanToken(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT `+tokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, tokenHash))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return t, nil
}

// RevokeAllByUser revokes every active token of userID and reports how many
// were affected.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	if err != nil {
		return 0, postgres.MapError(err, entity, userID)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpired removes tokens past their expiry. Revoked tokens are kept
// until then so a replay can still be recognised.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, postgres.MapError(err, entity, uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
