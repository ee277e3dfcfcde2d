package dedupcache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// generation is the current and previous Bloom filter side by side. Cache
// swaps the pointer wholesale on each rotation tick rather than locking
// readers out while a new filter builds.
type generation struct {
	curr *bloomFilter
	prev *bloomFilter
}

// Cache is the store-dedup cache storeFile marks after each write: a
// two-generation Bloom filter short-circuits the common not-seen-before
// case, falling back to Redis only when the filter reports a possible hit.
// Redis may be nil, in which case the Bloom filter's answer is used
// outright and a possible hit is reported as seen — the cache degrades to
// in-process-only rather than failing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger

	capacity uint64
	fpRate   float64

	gen        atomic.Pointer[generation]
	stopRotate chan struct{}
	rotateDone chan struct{}
}

// Options configures Cache. Zero values fall back to the same defaults the
// Bloom filter and Redis TTL use elsewhere in this package.
type Options struct {
	Capacity          uint64
	FalsePositiveRate float64
	RotateEvery       time.Duration
	TTL               time.Duration
	Logger            *slog.Logger
}

// New builds a Cache and starts its background rotation goroutine. client
// may be nil to run Bloom-filter-only. Callers should call Close when done
// with the cache to release that goroutine.
func New(client *redis.Client, opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = 1_000_000
	}
	fpRate := opts.FalsePositiveRate
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = 0.01
	}
	rotateEvery := opts.RotateEvery
	if rotateEvery <= 0 {
		rotateEvery = 30 * time.Minute
	}

	c := &Cache{
		client:     client,
		ttl:        ttl,
		logger:     logger,
		capacity:   capacity,
		fpRate:     fpRate,
		stopRotate: make(chan struct{}),
		rotateDone: make(chan struct{}),
	}
	c.gen.Store(&generation{
		curr: newBloomFilter(capacity, fpRate),
		prev: newBloomFilter(capacity, fpRate),
	})

	go c.rotateLoop(rotateEvery)
	return c
}

// rotateLoop periodically retires the previous generation and starts a
// fresh current one, the way workerpool's monitor loop runs its own
// periodic adjustment on a ticker rather than checking on every call.
func (c *Cache) rotateLoop(every time.Duration) {
	defer close(c.rotateDone)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopRotate:
			return
		case <-ticker.C:
			old := c.gen.Load()
			c.gen.Store(&generation{
				curr: newBloomFilter(c.capacity, c.fpRate),
				prev: old.curr,
			})
		}
	}
}

// Close stops the background rotation goroutine. Idempotent.
func (c *Cache) Close() {
	select {
	case <-c.stopRotate:
	default:
		close(c.stopRotate)
	}
	<-c.rotateDone
}

// MaybeSeen reports whether key has plausibly been marked before. It never
// blocks the caller on a broken Redis connection: any client error is
// logged and treated as "not seen".
func (c *Cache) MaybeSeen(key string) bool {
	g := c.gen.Load()
	if !g.curr.maybeHas(key) && !g.prev.maybeHas(key) {
		return false
	}
	if c.client == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	n, err := c.client.Exists(ctx, redisKey(key)).Result()
	if err != nil {
		c.logger.Debug("dedup cache redis lookup failed", "error", err)
		return false
	}
	return n > 0
}

// MarkSeen records key as seen in both the Bloom filter and, if
// configured, Redis. Redis failures are logged but never surfaced to the
// caller — a dedup cache is an optimization, not a correctness dependency.
func (c *Cache) MarkSeen(key string) {
	c.gen.Load().curr.add(key)
	if c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := c.client.Set(ctx, redisKey(key), 1, c.ttl).Err(); err != nil {
		c.logger.Debug("dedup cache redis mark failed", "error", err)
	}
}

func redisKey(key string) string { return "dedup:" + key }
