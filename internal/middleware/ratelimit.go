// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iyunix/go-workshopchat/internal/metrics"
	"github.com/iyunix/go-workshopchat/internal/ratelimit"
)

// RateLimitMiddleware limits requests per authenticated user, falling back
// to the client IP when the request carries no identity. It must run after
// RequireAuth to key by user.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := "ip:" + ratelimit.GetClientIP(r)
			if userID, _, ok := Identity(r.Context()); ok {
				identifier = "user:" + userID
			}

			allowed, info := limiter.Allow(identifier)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))

			if !allowed {
				metrics.RateLimitHits.WithLabelValues(name).Inc()
				logger.Warn("[RateLimit] request blocked", "endpoint", name, "identifier", identifier)

				retryAfter := int(info.RetryAfter.Seconds() + 0.5)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many messages. Please try again later.",
					"retryAfter": retryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
