package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_BurstThenDeny(t *testing.T) {
	cl := NewClientLimiter(1, 3)

	// GIVEN a fresh client with burst 3
	// WHEN it fires four immediate requests
	// THEN the fourth is denied
	for i := 0; i < 3; i++ {
		assert.True(t, cl.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, cl.Allow("10.0.0.1"))
}

func TestClientLimiter_PerHostIsolation(t *testing.T) {
	cl := NewClientLimiter(1, 1)

	assert.True(t, cl.Allow("10.0.0.1"))
	assert.False(t, cl.Allow("10.0.0.1"))

	// A different host has its own bucket.
	assert.True(t, cl.Allow("10.0.0.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	cl := NewClientLimiter(1, 1)
	handler := RateLimit(cl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/period/state", nil)
	req.RemoteAddr = "10.0.0.9:51234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
