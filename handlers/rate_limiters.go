package handlers

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiters holds the per-route limits: reads are generous, sends are
// tighter.
type RateLimiters struct {
	ViewLimit    *IPRateLimiter
	MessageLimit *IPRateLimiter
}

func NewRateLimiters() *RateLimiters {
	return &RateLimiters{
		ViewLimit:    NewIPRateLimiter(1200, time.Minute),
		MessageLimit: NewIPRateLimiter(300, time.Minute),
	}
}

// IPRateLimiter is a sliding-window counter keyed by remote address.
type IPRateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

// Allow records a hit for ip and reports whether it is within the limit.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.window)

	valid := l.seen[ip][:0]
	for _, hit := range l.seen[ip] {
		if hit.After(windowStart) {
			valid = append(valid, hit)
		}
	}

	if len(valid) >= l.limit {
		l.seen[ip] = valid
		return false
	}

	l.seen[ip] = append(valid, now)
	return true
}

func (l *IPRateLimiter) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.RemoteAddr) {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
