package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter enforces a token-bucket rate limit per key.
type Limiter struct {
	rate    float64
	burst   float64
	mu      sync.Mutex
	buckets map[string]*bucket
	ttl     time.Duration
}

// LimiterOption customizes the limiter.
type LimiterOption func(*Limiter)

// LimiterTTL evicts idle buckets after the duration.
func LimiterTTL(ttl time.Duration) LimiterOption {
	return func(l *Limiter) {
		l.ttl = ttl
	}
}

// NewLimiter creates a limiter with tokens per second and burst.
func NewLimiter(rate float64, burst int, options ...LimiterOption) *Limiter {
	limiter := &Limiter{
		rate:    rate,
		burst:   float64(burst),
		buckets: make(map[string]*bucket),
	}
	for _, opt := range options {
		opt(limiter)
	}
	return limiter
}

// Allow reports whether the key can proceed.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ttl > 0 {
		for k, b := range l.buckets {
			if k != key && now.Sub(b.last) > l.ttl {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}

	b.tokens -= 1
	return true
}

// KeyFunc extracts a rate limiting key from the request.
type KeyFunc func(*http.Request) string

type rateLimitConfig struct {
	keyFunc    KeyFunc
	onLimit    http.HandlerFunc
	retryAfter time.Duration
}

// RateLimitOption customizes rate limit middleware behavior.
type RateLimitOption func(*rateLimitConfig)

// RateLimitKey sets the key function.
func RateLimitKey(fn KeyFunc) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.keyFunc = fn
	}
}

// RateLimitHandler sets the handler for limited requests.
func RateLimitHandler(fn http.HandlerFunc) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.onLimit = fn
	}
}

// RateLimitRetryAfter sets the Retry-After header duration.
func RateLimitRetryAfter(duration time.Duration) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.retryAfter = duration
	}
}

// RateLimit rejects requests above the limiter's budget with 429. Keys
// default to the client IP, so one noisy reporter cannot starve the rest.
func RateLimit(limiter *Limiter, options ...RateLimitOption) func(http.Handler) http.Handler {
	cfg := rateLimitConfig{keyFunc: ClientIP}
	for _, opt := range options {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := cfg.keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(key) {
				if cfg.retryAfter > 0 {
					w.Header().Set("Retry-After", formatRetryAfter(cfg.retryAfter))
				}
				if cfg.onLimit != nil {
					cfg.onLimit(w, r)
					return
				}
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the client address, preferring the first
// X-Forwarded-For hop.
func ClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		parts := strings.Split(ip, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func formatRetryAfter(duration time.Duration) string {
	seconds := int(duration.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
