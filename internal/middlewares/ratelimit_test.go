package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)

	rr := do("10.0.0.1:1002")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "TOO_MANY_REQUESTS")

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003").Code)
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	now = now.Add(idleLimiterTTL + time.Second)
	assert.True(t, limiter.Allow("b"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.clients, 1)
	assert.Contains(t, limiter.clients, "b")
}

func TestIPRateLimiter_EvictsAtMostOncePerInterval(t *testing.T) {
	limiter := NewIPRateLimiter(100, 100)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	clients := func() []string {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		keys := make([]string, 0, len(limiter.clients))
		for k := range limiter.clients {
			keys = append(keys, k)
		}
		return keys
	}

	assert.True(t, limiter.Allow("a"))
	now = now.Add(30 * time.Second)
	assert.True(t, limiter.Allow("b"))

	now = now.Add(idleLimiterTTL - 20*time.Second)
	assert.True(t, limiter.Allow("c"))
	assert.ElementsMatch(t, []string{"b", "c"}, clients())

	// b is idle now but the last scan was under evictInterval ago.
	now = now.Add(30 * time.Second)
	assert.True(t, limiter.Allow("c"))
	assert.ElementsMatch(t, []string{"b", "c"}, clients())

	now = now.Add(evictInterval)
	assert.True(t, limiter.Allow("c"))
	assert.ElementsMatch(t, []string{"c"}, clients())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
