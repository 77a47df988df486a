// Package ratelimit provides a per-client token-bucket middleware for the
// usage increment endpoint.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyFunc derives the client key a request is limited by.
type KeyFunc func(r *http.Request) string

// Limiter hands out a token bucket per client key.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewLimiter constructs a Limiter allowing rps requests per second with
// the given burst per client key.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

// Allow reports whether the key may proceed, evicting idle buckets as a
// side effect.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, k)
		}
	}

	e, ok := l.entries[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.Allow()
}

// RemoteAddrKey keys requests by client IP, preferring the first entry of
// X-Forwarded-For when present.
func RemoteAddrKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr)); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func Middleware(limiter *Limiter, keyFn KeyFunc) func(next http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = RemoteAddrKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFn(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
