package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Buckets idle for longer than this are evicted by the cleanup loop.
const rateLimitIdleEviction = 10 * time.Minute

// RateLimiter throttles requests per client IP with a token bucket per
// address. Buckets are created lazily and evicted after going idle.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	stop    chan struct{}
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its eviction loop.
// Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	go rl.evictIdle(cleanupInterval)
	return rl
}

// Stop terminates the eviction loop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware enforcing maxPerMinute requests per client
// IP. Rejected requests get 429 with a Retry-After hint.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	capacity := float64(maxPerMinute)
	perSecond := capacity / 60

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientIP(r), capacity, perSecond) {
				w.Header().Set("Retry-After", strconv.Itoa(int(1/perSecond)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take refills the caller's bucket for the time elapsed since its last
// request, then spends one token if available.
func (rl *RateLimiter) take(key string, capacity, perSecond float64) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]
	if !ok {
		b = &tokenBucket{tokens: capacity, lastSeen: now}
		rl.clients[key] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * perSecond
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rateLimitIdleEviction)
			rl.mu.Lock()
			for key, b := range rl.clients {
				if b.lastSeen.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP keys buckets by the remote host, so one client cannot reset
// its budget by reconnecting from a new source port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
