package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/korima-app/korima-backend/pkg/ctxutil"
)

const visitorTTL = 10 * time.Minute

// RateLimiter hands out per-client token buckets. Each Limit call gets its
// own set of buckets, so limits on different routes never share tokens.
type RateLimiter struct {
	mu     sync.Mutex
	scopes []*limitScope
	stop   chan struct{}
}

type limitScope struct {
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that allows maxPerMinute requests per client,
// with a burst of the same size. Authenticated callers are keyed by user ID,
// anonymous ones by IP.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	if maxPerMinute <= 0 {
		maxPerMinute = 1
	}
	scope := &limitScope{
		limit:    rate.Every(time.Minute / time.Duration(maxPerMinute)),
		burst:    maxPerMinute,
		visitors: make(map[string]*visitor),
	}
	rl.mu.Lock()
	rl.scopes = append(rl.scopes, scope)
	rl.mu.Unlock()

	retryAfter := strconv.Itoa(int(60/maxPerMinute) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !scope.get(clientKey(r)).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (s *limitScope) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if v, ok := s.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(s.limit, s.burst)
	s.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

func (s *limitScope) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.visitors {
		if now.Sub(v.lastSeen) >= visitorTTL {
			delete(s.visitors, k)
		}
	}
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			scopes := append([]*limitScope(nil), rl.scopes...)
			rl.mu.Unlock()
			for _, s := range scopes {
				s.evictIdle(now)
			}
		}
	}
}
