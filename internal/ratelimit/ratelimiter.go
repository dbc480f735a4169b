package ratelimit

import "time"

type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

func (c Config) Enabled() bool {
	return c.RequestsPerMinute > 0 || c.RequestsPerHour > 0
}

// RateLimiter bounds incident submissions per source over sliding windows.
type RateLimiter interface {
	Allow(key string, cfg Config) (bool, error)
	Reset(key string) error
}

var windows = []struct {
	Duration time.Duration
	Limit    func(Config) int
}{
	{time.Minute, func(c Config) int { return c.RequestsPerMinute }},
	{time.Hour, func(c Config) int { return c.RequestsPerHour }},
}
