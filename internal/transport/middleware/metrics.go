package middleware

import (
	"net/http"
	"time"

	"github.com/korima-app/korima-backend/internal/metrics"
)

// Metrics records request count, latency and in-flight gauge for one route.
// route is the registered pattern so label cardinality stays bounded.
func Metrics(m *metrics.Metrics, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.InflightInc()
			defer m.InflightDec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			m.ObserveHTTP(r.Method, route, sw.status, time.Since(start))
		})
	}
}
