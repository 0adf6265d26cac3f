// Package ratelimit provides a token-bucket rate limiter for the auth
// endpoints, keyed by client IP.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single client's token bucket. Tokens refill at a steady rate up
// to the configured burst capacity.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter manages per-client token buckets.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup goroutine.
func NewLimiter(cfg *Config) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  cfg,
	}

	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(cfg.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether the client identified by clientID may make a request
// now, consuming a token if so.
func (l *Limiter) Allow(clientID string) bool {
	if !l.config.Enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.config.Limit), lastRefill: now}
		l.buckets[clientID] = b
	}

	refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
	b.tokens = min(float64(l.config.Limit), b.tokens+now.Sub(b.lastRefill).Seconds()*refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}

// cleanupLoop periodically drops buckets that have fully refilled, so idle
// clients do not accumulate.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanup()
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
	now := time.Now()
	for id, b := range l.buckets {
		tokens := b.tokens + now.Sub(b.lastRefill).Seconds()*refillRate
		if tokens >= float64(l.config.Limit) {
			delete(l.buckets, id)
		}
	}
}
