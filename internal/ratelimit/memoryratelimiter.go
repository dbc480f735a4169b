package ratelimit

import (
	"sync"
	"time"
)

// MemoryRateLimiter is the in-process fallback used when no redis is
// configured. Same sliding-window semantics per key, state lost on restart.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
}

func NewMemoryRateLimiter() RateLimiter {
	return &MemoryRateLimiter{events: map[string][]time.Time{}}
}

func (l *MemoryRateLimiter) Allow(key string, cfg Config) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// Drop events older than the widest window we track.
	cutoff := now.Add(-time.Hour)
	kept := l.events[key][:0]
	for _, ts := range l.events[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.events[key] = kept

	for _, w := range windows {
		limit := w.Limit(cfg)
		if limit <= 0 {
			continue
		}
		start := now.Add(-w.Duration)
		count := 0
		for _, ts := range kept {
			if ts.After(start) {
				count++
			}
		}
		if count >= limit {
			return false, nil
		}
	}

	l.events[key] = append(l.events[key], now)
	return true, nil
}

func (l *MemoryRateLimiter) Reset(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.events, key)
	return nil
}
