package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedWindowRateLimiter_AllowsUpToLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(2, time.Minute)

	ok, _ := rl.Allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	require.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1")
	require.False(t, ok)
	require.Greater(t, retry, time.Duration(0))

	ok, _ = rl.Allow("10.0.0.2")
	require.True(t, ok, "limits are per client")
}

func TestFixedWindowRateLimiter_WindowRolls(t *testing.T) {
	now := time.Unix(0, 0)
	rl := NewFixedWindowLimiter(1, 5*time.Second)
	rl.now = func() time.Time { return now }
	rl.windowStart = now

	ok, _ := rl.Allow("a")
	require.True(t, ok)
	ok, _ = rl.Allow("a")
	require.False(t, ok)

	now = now.Add(5 * time.Second)
	ok, _ = rl.Allow("a")
	require.True(t, ok)
}

func TestFixedWindowRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
