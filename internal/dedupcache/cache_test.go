package dedupcache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c := New(client, Options{})
	t.Cleanup(c.Close)
	return c, mr
}

func TestCacheBloomOnlyModeWithNilClient(t *testing.T) {
	c := New(nil, Options{})
	t.Cleanup(c.Close)

	if c.MaybeSeen("file-1") {
		t.Error("expected MaybeSeen to be false before MarkSeen")
	}
	c.MarkSeen("file-1")
	if !c.MaybeSeen("file-1") {
		t.Error("expected MaybeSeen to be true after MarkSeen")
	}
}

func TestCacheFallsBackToRedisOnBloomHit(t *testing.T) {
	c, mr := newTestCache(t)

	c.MarkSeen("file-1")
	if !c.MaybeSeen("file-1") {
		t.Error("expected MaybeSeen to be true after MarkSeen")
	}

	mr.FastForward(0) // no-op, keeps miniredis referenced for clarity
	if c.MaybeSeen("file-2") {
		t.Error("expected MaybeSeen to be false for an unseen key")
	}
}

func TestCacheDegradesGracefullyWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	c := New(client, Options{})
	t.Cleanup(c.Close)
	c.MarkSeen("file-1") // bloom add always succeeds; redis write is best-effort

	// The bloom filter reports a possible hit, so MaybeSeen falls through to
	// Redis, which is unreachable; it must not panic or block indefinitely.
	if !c.MaybeSeen("file-1") {
		t.Log("redis unreachable: MaybeSeen conservatively reported unseen, as expected")
	}
}

func TestCacheRotationKeepsRecentKeyVisibleInPreviousGeneration(t *testing.T) {
	c := New(nil, Options{RotateEvery: 20 * time.Millisecond})
	t.Cleanup(c.Close)

	c.MarkSeen("key1")
	time.Sleep(30 * time.Millisecond) // let at least one rotation tick fire

	if !c.MaybeSeen("key1") {
		t.Error("expected key1 to remain visible via the previous generation after rotation")
	}
}

func TestCacheDefaultsAppliedWithZeroOptions(t *testing.T) {
	c := New(nil, Options{})
	t.Cleanup(c.Close)

	if c.capacity != 1_000_000 {
		t.Errorf("capacity = %d, want 1000000", c.capacity)
	}
	if c.fpRate != 0.01 {
		t.Errorf("fpRate = %f, want 0.01", c.fpRate)
	}
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := New(nil, Options{})
	c.Close()
	c.Close() // must not panic or block on a second call
}
