package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// SetUserRole changes the role of a user (admin only). An admin cannot take
// the admin role away from themselves.
func (s *Service) SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if targetUserID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be one of: user, moderator, admin")
	}
	if callerID == targetUserID && role != domain.UserRoleAdmin {
		return nil, domain.NewValidationError("role", "cannot demote yourself")
	}

	user, err := s.users.SetRole(ctx, targetUserID, role)
	if err != nil {
		return nil, fmt.Errorf("admin.SetUserRole: %w", err)
	}
	s.cache.Invalidate(targetUserID)

	s.log.InfoContext(ctx, "user role updated",
		slog.String("admin_id", callerID.String()),
		slog.String("target_user_id", targetUserID.String()),
		slog.String("new_role", role.String()),
	)

	return user, nil
}
