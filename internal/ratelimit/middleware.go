// Package ratelimit provides per-client rate limiting functionality.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
)

// DefaultRetryAfterSeconds is the default value for the Retry-After header
// when a rate limit is exceeded.
const DefaultRetryAfterSeconds = 1

// ClientKey extracts the rate-limit key from a request: the remote host
// without the port. The API is unauthenticated, so the peer address is the
// only identity available.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware creates HTTP middleware that enforces per-client rate limits.
//
// The middleware returns 429 Too Many Requests when the rate limit is
// exceeded, including:
//   - Retry-After header with the recommended wait time in seconds
//   - X-RateLimit-Remaining header with the approximate remaining requests
func Middleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rateLimiter := limiter.GetLimiter(ClientKey(r))

		if !rateLimiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(DefaultRetryAfterSeconds))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("Too Many Requests"))
			return
		}

		// Tokens() returns the current number of available tokens
		remaining := int(rateLimiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	})
}
