/*
ratelimit.go - Per-client rate limiting middleware

PURPOSE:
  Applies a token-bucket limit per remote host so a runaway client cannot
  monopolize the single-threaded tracker. Stale limiters are evicted on a
  timer to bound memory.
*/
package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 10 * time.Minute
)

// ClientLimiter manages one token bucket per remote host.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientEntry
	rps      rate.Limit
	burst    int
	lastScan time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a limiter allowing rps requests per second with
// the given burst per client.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		limiters: make(map[string]*clientEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastScan: time.Now(),
	}
}

// Allow reports whether a request from host is within its budget.
func (cl *ClientLimiter) Allow(host string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	if now.Sub(cl.lastScan) > limiterCleanupInterval {
		for h, e := range cl.limiters {
			if now.Sub(e.lastSeen) > limiterTTL {
				delete(cl.limiters, h)
			}
		}
		cl.lastScan = now
	}

	e, ok := cl.limiters[host]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.limiters[host] = e
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

// RateLimit wraps handlers with the per-client limit.
func RateLimit(cl *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !cl.Allow(host) {
				writeError(w, http.StatusTooManyRequests, "Too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
