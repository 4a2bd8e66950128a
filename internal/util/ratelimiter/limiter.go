package ratelimiter

import (
	"sync"
	"time"
)

// Keyed provides simple per-key time-based rate limiting. It allows one
// action per key per interval and is safe for concurrent use. The
// session uses it to throttle repeated user-visible notifications for
// the same failure.
type Keyed struct {
	mu          sync.Mutex
	interval    time.Duration
	lastAllowed map[string]time.Time
}

// NewKeyed creates a new keyed rate limiter with the specified interval.
// Actions are limited to at most one per key per interval.
func NewKeyed(interval time.Duration) *Keyed {
	return &Keyed{
		interval:    interval,
		lastAllowed: make(map[string]time.Time),
	}
}

// Allow checks if an action for the given key is allowed at this time.
// Returns true if allowed (and records this as the key's last allowed
// time), or false with the remaining wait duration if rate-limited.
func (l *Keyed) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	timeSinceLast := now.Sub(l.lastAllowed[key])

	if timeSinceLast >= l.interval {
		l.lastAllowed[key] = now
		return true, 0
	}

	return false, l.interval - timeSinceLast
}

// Reset clears the limiter state, allowing the next action on every key
// immediately.
func (l *Keyed) Reset() {
	l.mu.Lock()
	l.lastAllowed = make(map[string]time.Time)
	l.mu.Unlock()
}

// Interval returns the configured rate limit interval.
func (l *Keyed) Interval() time.Duration {
	return l.interval
}
