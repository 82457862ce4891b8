package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter is the in-process fallback: one token bucket per client key,
// guarded by a mutex so it is safe across request handlers.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewMemoryLimiter approximates `limit requests per window` as a token
// bucket refilling at limit/window with a burst of limit.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	lim, ok := m.limiters[key]
	if !ok {
		lim = rate.NewLimiter(m.rps, m.burst)
		m.limiters[key] = lim
	}
	m.mu.Unlock()

	return lim.Allow(), nil
}
