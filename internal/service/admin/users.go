package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// ListUsers returns a page of users for the moderation view (staff only).
func (s *Service) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}

	f.Search = strings.TrimSpace(f.Search)

	var errs []domain.FieldError
	if f.Role != nil && !f.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be one of: user, moderator, admin"})
	}
	if f.Limit < 0 || f.Limit > maxUsersLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxUsersLimit)})
	}
	if f.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return nil, 0, domain.NewValidationErrors(errs)
	}
	if f.Limit == 0 {
		f.Limit = defaultUsersLimit
	}

	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("admin.ListUsers: %w", err)
	}
	return users, total, nil
}

func requireStaff(ctx context.Context) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsStaffCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
