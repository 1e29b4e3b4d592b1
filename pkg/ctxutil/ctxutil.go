// Package ctxutil carries the caller's identity and the request ID through
// context.Context.
package ctxutil

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
	requestIDKey
)

// Role names as they appear in access token claims.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx reports the authenticated user. uuid.Nil counts as anonymous.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx returns the role claim, or "" for anonymous callers.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// HasRole reports whether the caller's role is one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	role := UserRoleFromCtx(ctx)
	return role != "" && slices.Contains(roles, role)
}

func IsAdminCtx(ctx context.Context) bool {
	return HasRole(ctx, RoleAdmin)
}

// IsStaffCtx is true for admins and moderators.
func IsStaffCtx(ctx context.Context) bool {
	return HasRole(ctx, RoleAdmin, RoleModerator)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
