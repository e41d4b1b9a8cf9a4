package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements per-client rate limiting. Idle clients are
// evicted during lookups so the map stays bounded under IP churn.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rateLimiterClient
	rate     rate.Limit
	burst    int
	idleFor  time.Duration
	sweepGap time.Duration
	sweptAt  time.Time
}

type rateLimiterClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter.
// r is requests per second, b is the max burst size.
func NewRateLimiter(r float64, b int) *RateLimiter {
	return &RateLimiter{
		clients:  make(map[string]*rateLimiterClient),
		rate:     rate.Limit(r),
		burst:    b,
		idleFor:  3 * time.Minute,
		sweepGap: time.Minute,
		sweptAt:  time.Now(),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.sweptAt) >= rl.sweepGap {
		for key, client := range rl.clients {
			if now.Sub(client.lastSeen) > rl.idleFor {
				delete(rl.clients, key)
			}
		}
		rl.sweptAt = now
	}

	client, exists := rl.clients[ip]
	if !exists {
		client = &rateLimiterClient{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter
}

// Limit is a middleware that enforces rate limiting per client.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		limiter := rl.getLimiter(ip)

		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client IP from the request, honoring proxy
// headers when present.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}

func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return len(rl.clients)
}
