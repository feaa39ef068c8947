// Package rate provides a per-key token-bucket limiter, used to throttle
// authentication attempts per username.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold bounds the key map; idle entries are dropped once crossed.
const pruneThreshold = 1024

// KeyLimiter applies an independent token bucket per key.
type KeyLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit rate.Limit
	burst int
	idle  time.Duration
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewKeyLimiter allows requests tokens per window for each key, with the full
// allowance available as a burst.
func NewKeyLimiter(requests int, window time.Duration) *KeyLimiter {
	return &KeyLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		idle:    3 * window,
	}
}

// Allow reports whether the key may proceed now.
func (l *KeyLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(l.limit, l.burst)}
		if len(l.entries) >= pruneThreshold {
			l.prune(now)
		}
		l.entries[key] = e
	}
	e.lastSeen = now

	return e.lim.Allow()
}

// prune drops entries idle long enough that their buckets are full again.
// Caller holds the lock.
func (l *KeyLimiter) prune(now time.Time) {
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.entries, key)
		}
	}
}
