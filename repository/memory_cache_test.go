package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v"))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok, "entry should still be live before the ttl")

	now = now.Add(time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok, "entry should expire at the ttl")
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ExpiryKeepsEntryRefreshedMeanwhile(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "k", "old"))

	now = now.Add(2 * time.Minute)
	refreshed := false
	cache.now = func() time.Time {
		// Runs between the read-locked lookup and the write-locked delete.
		if !refreshed {
			refreshed = true
			require.NoError(t, cache.Set(ctx, "k", "new"))
		}
		return now
	}

	val, ok := cache.Get(ctx, "k")
	require.True(t, refreshed)
	assert.True(t, ok)
	assert.Equal(t, "new", val)

	val, ok = cache.Get(ctx, "k")
	assert.True(t, ok, "the refreshed entry must survive the stale expiry")
	assert.Equal(t, "new", val)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = cache.Set(ctx, key, "v")
			cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, cache.Len())
}
