package http

import (
	"math"
	"sync"
	"time"
)

const (
	idleBucketTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

// Request costs in tokens. A sensitivity sweep runs many projections, so it
// is charged more than a single projection or settlement quote.
const (
	ProjectionCost   = 1
	SettlementCost   = 1
	DefaultSweepCost = 3
)

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. A bucket holds at most capacity
// tokens and regains capacity tokens per window, continuously. Requests
// spend a route-specific cost.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    float64
	window      time.Duration
	perSecond   float64
	buckets     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:    float64(capacity),
		window:      window,
		perSecond:   float64(capacity) / window.Seconds(),
		buckets:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopCleanup:
			return
		}
	}
}

// evictIdle drops clients that have been quiet long enough for their bucket
// to be full again anyway.
func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.buckets {
		if now.Sub(b.lastSeen) > idleBucketTTL {
			delete(r.buckets, client)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow spends cost tokens from the client's bucket. When the bucket is
// short it returns false and how long until enough tokens have refilled.
// A cost above the capacity is charged as the full capacity.
func (r *RateLimiter) Allow(client string, cost int) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	need := math.Min(float64(cost), r.capacity)
	now := r.now()

	b, ok := r.buckets[client]
	if !ok {
		b = &clientBucket{tokens: r.capacity, lastSeen: now}
		r.buckets[client] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens = math.Min(r.capacity, b.tokens+elapsed*r.perSecond)
		b.lastSeen = now
	}

	if b.tokens < need {
		wait := (need - b.tokens) * r.window.Seconds() / r.capacity
		return false, time.Duration(math.Ceil(wait)) * time.Second
	}
	b.tokens -= need
	return true, 0
}
