package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(rl *RateLimiter) *time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return &now
}

func TestRateLimiter_RefillsContinuously(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	now := fixedClock(rl)

	ok, _ := rl.Allow("10.0.0.1", 1)
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1", 1)
	assert.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1", 1)
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, retry)

	ok, _ = rl.Allow("10.0.0.2", 1)
	assert.True(t, ok, "buckets are per client")

	*now = now.Add(30 * time.Second)
	ok, _ = rl.Allow("10.0.0.1", 1)
	assert.True(t, ok)
}

func TestRateLimiter_CostSpendsTokens(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	defer rl.Stop()
	fixedClock(rl)

	ok, _ := rl.Allow("10.0.0.1", 3)
	assert.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1", 3)
	assert.False(t, ok)
	assert.Equal(t, 12*time.Second, retry, "one missing token at 5/min")

	ok, _ = rl.Allow("10.0.0.1", 2)
	assert.True(t, ok, "a denied request spends nothing")
}

func TestRateLimiter_CostAboveCapacityIsClamped(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	now := fixedClock(rl)

	ok, _ := rl.Allow("10.0.0.1", 10)
	assert.True(t, ok, "a full bucket always admits one request")

	ok, retry := rl.Allow("10.0.0.1", 10)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	*now = now.Add(time.Minute)
	ok, _ = rl.Allow("10.0.0.1", 10)
	assert.True(t, ok)
}

func TestRateLimiter_EvictIdleDropsQuietClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := fixedClock(rl)

	rl.Allow("10.0.0.1", 1)
	*now = now.Add(30 * time.Minute)
	rl.Allow("10.0.0.2", 1)

	*now = now.Add(45 * time.Minute)
	rl.evictIdle()

	assert.NotContains(t, rl.buckets, "10.0.0.1")
	assert.Contains(t, rl.buckets, "10.0.0.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
