// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // Sliding window length
	MaxAttempts   int           // Maximum requests per window
	CleanupPeriod time.Duration // How often to drop idle identifiers
}

// DefaultSendConfig is the limit applied to message sending.
func DefaultSendConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxAttempts:   30,
		CleanupPeriod: 5 * time.Minute,
	}
}

// MemoryRateLimiter is an in-memory sliding-window limiter. Each identifier
// keeps the timestamps of its requests inside the current window.
type MemoryRateLimiter struct {
	config   *Config
	attempts map[string][]time.Time
	mu       sync.Mutex
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryRateLimiter creates a limiter and starts its cleanup goroutine.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	limiter := newLimiter(config, time.Now)
	go limiter.cleanupLoop()
	return limiter
}

func newLimiter(config *Config, now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config:   config,
		attempts: make(map[string][]time.Time),
		now:      now,
		stopCh:   make(chan struct{}),
	}
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Allow records a request for identifier unless the window is already full.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := rl.prune(identifier, now)

	if len(recent) >= rl.config.MaxAttempts {
		oldest := recent[0]
		reset := oldest.Add(rl.config.WindowSize)
		return false, &RateLimitInfo{
			Allowed:    false,
			Limit:      rl.config.MaxAttempts,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
	}

	recent = append(recent, now)
	rl.attempts[identifier] = recent
	return true, &RateLimitInfo{
		Allowed:   true,
		Limit:     rl.config.MaxAttempts,
		Remaining: rl.config.MaxAttempts - len(recent),
		ResetTime: recent[0].Add(rl.config.WindowSize),
	}
}

// Reset forgets every request recorded for identifier.
func (rl *MemoryRateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, identifier)
}

// prune drops timestamps that fell out of the window. Caller holds mu.
func (rl *MemoryRateLimiter) prune(identifier string, now time.Time) []time.Time {
	stamps := rl.attempts[identifier]
	cutoff := now.Add(-rl.config.WindowSize)
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	stamps = stamps[i:]
	if len(stamps) == 0 {
		delete(rl.attempts, identifier)
		return nil
	}
	rl.attempts[identifier] = stamps
	return stamps
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for identifier := range rl.attempts {
		rl.prune(identifier, now)
	}
}

// Close stops the cleanup goroutine
func (rl *MemoryRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
