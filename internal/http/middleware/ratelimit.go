package middleware

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

type rateWindow struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is the in-process fallback used when Redis is not
// configured; it only protects a single instance.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*rateWindow)}
}

func (l *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.windows[key]
	if entry == nil || now.After(entry.expiresAt) {
		l.windows[key] = &rateWindow{count: 1, expiresAt: now.Add(window)}
		return true
	}
	entry.count++
	return entry.count <= limit
}
