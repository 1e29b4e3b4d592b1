package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/korima-app/korima-backend/internal/domain"
)

// constraintErrors maps named schema constraints to the domain rule they
// enforce. They are the last line of defence behind the conditional updates
// in the repositories.
var constraintErrors = map[string]error{
	"users_points_non_negative":         domain.ErrInsufficientPoints,
	"responses_one_best_per_request":    domain.ErrAlreadyDecided,
	"daily_request_counts_non_negative": domain.ErrConflict,
}

// codeErrors maps SQLSTATE codes.
var codeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"22P02": domain.ErrValidation,    // invalid_text_representation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
	"55P03": domain.ErrConflict,      // lock_not_available
}

// MapError converts pgx errors into domain errors, prefixed with entity and
// id. Context cancellation passes through unmapped.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, id, classify(err))
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return mapped
	}
	if mapped, ok := codeErrors[pgErr.Code]; ok {
		return mapped
	}
	return err
}
