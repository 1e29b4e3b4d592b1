package middleware

import (
	"net/http"

	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

// RequireStaff rejects callers that are not admins or moderators. Services
// repeat the finer-grained checks; this only keeps anonymous traffic away
// from the admin surface.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if !ctxutil.IsStaffCtx(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden", "permission denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
