package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyagehub/travel-bookings/internal/http/response"
)

// RateLimiter throttles unauthenticated endpoints (signup, login) per
// client IP using a fixed redis window. It fails open: a redis outage must
// not take authentication down with it.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(r.Context(), getClientIP(r)+":"+r.URL.Path) {
				response.RateLimit(w, "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Hash the key so raw client IPs never land in redis.
	hashed := fmt.Sprintf("ratelimit:%x", sha256.Sum256([]byte(key)))

	count, err := rl.client.Incr(ctx, hashed).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		rl.client.Expire(ctx, hashed, rl.window)
	}

	return count <= int64(rl.limit)
}

// getClientIP extracts the real client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
