package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// BypassHeader is the opaque header whose mere presence (any non-empty
// value) bypasses the rate limiter for one request. Its value is never
// validated against a list here — a real authorization layer is an
// external concern.
const BypassHeader = "X-Bypass-Key"

// RateLimiter is an in-memory sliding-window limiter: one ordered
// timestamp slice per client address. Eviction of timestamps older than
// the window happens inside the same critical section as the
// count-and-insert — there is exactly one piece of mutable shared state in
// this service, and this is it.
type RateLimiter struct {
	mu       sync.Mutex
	visits   map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewRateLimiter builds a limiter. limit<=0 disables limiting entirely (used
// in tests). now defaults to time.Now.
func NewRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		visits: make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    now,
	}
}

// Allow evicts timestamps older than the window for client, then reports
// whether a new request may proceed, recording it if so.
func (r *RateLimiter) Allow(client string) bool {
	if r.limit <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)
	kept := r.visits[client][:0]
	for _, t := range r.visits[client] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= r.limit {
		r.visits[client] = kept
		return false
	}
	r.visits[client] = append(kept, now)
	return true
}

// Middleware enforces the limit per client address, bypassing it when
// BypassHeader is present.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.TrimSpace(req.Header.Get(BypassHeader)) != "" {
			next.ServeHTTP(w, req)
			return
		}
		if !r.Allow(clientAddress(req)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func clientAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if comma := strings.IndexByte(fwd, ','); comma > 0 {
			fwd = fwd[:comma]
		}
		if parsed := net.ParseIP(strings.TrimSpace(fwd)); parsed != nil {
			return parsed.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
