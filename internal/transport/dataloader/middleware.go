package dataloader

import "net/http"

// Middleware gives each request its own Loaders, so batching and caching
// never cross request boundaries. Loaders already in the context are kept.
func Middleware(profiles profileSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := Lookup(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithLoaders(r.Context(), NewLoaders(profiles))))
		})
	}
}
