// Package ratelimit provides sliding-window request limiting for the HTTP
// surface.
package ratelimit

import (
	"context"
	"time"
)

// Store records requests per key within a time window.
type Store interface {
	// Record logs a request under key and returns the number of requests
	// currently inside the window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// Limiter decides whether a request from a client key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// SlidingWindowLimiter allows up to max requests per window and key.
type SlidingWindowLimiter struct {
	store  Store
	max    int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a limiter over the given store.
func NewSlidingWindowLimiter(store Store, max int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store:  store,
		max:    max,
		window: window,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, key, l.window)
	if err != nil {
		return false, err
	}

	return count <= l.max, nil
}
