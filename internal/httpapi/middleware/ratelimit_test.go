package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterSlidingWindowEvictsOldTimestamps(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	rl := NewRateLimiter(2, time.Minute, clock)

	require.True(t, rl.Allow("client-a"))
	require.True(t, rl.Allow("client-a"))
	require.False(t, rl.Allow("client-a"), "third request within the window must be rejected")

	now = now.Add(61 * time.Second)
	require.True(t, rl.Allow("client-a"), "requests outside the window must be evicted")
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil)
	require.True(t, rl.Allow("client-a"))
	require.True(t, rl.Allow("client-b"))
	require.False(t, rl.Allow("client-a"))
}

func TestRateLimiterDisabledWhenLimitNonPositive(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute, nil)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("client-a"))
	}
}

func TestMiddlewareRejectsOverLimitRequests(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.RemoteAddr = "203.0.113.5:1234"

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req)
	require.Equal(t, http.StatusOK, rec1.Code)

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestMiddlewareBypassHeaderSkipsLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	req.Header.Set(BypassHeader, "anything")

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
