// Package ratelimit throttles callers of the preview endpoints, which fan
// requests straight through to the storage systems.
package ratelimit

import "time"

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
