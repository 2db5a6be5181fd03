package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// FixedWindowRateLimiter counts requests per client key; all counters reset together
// at the end of every window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients     map[string]int
	limit       int
	window      time.Duration
	windowStart time.Time
	now         func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients:     make(map[string]int),
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Run resets the counters every window until ctx is done. Allow also rolls the window
// lazily, so Run only bounds memory held by idle clients.
func (rl *FixedWindowRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Lock()
			rl.reset()
			rl.Unlock()
		}
	}
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	if elapsed := rl.now().Sub(rl.windowStart); elapsed >= rl.window {
		rl.reset()
	}

	if rl.clients[key] >= rl.limit {
		return false, rl.window - rl.now().Sub(rl.windowStart)
	}

	rl.clients[key]++
	return true, 0
}

func (rl *FixedWindowRateLimiter) reset() {
	rl.clients = make(map[string]int)
	rl.windowStart = rl.now()
}
