package dedupcache

import "github.com/go-redis/redis/v8"

// NewRedisClient builds the client Cache optionally wraps. addr may be
// empty, in which case the caller should skip building a client and pass
// nil to New instead of calling this.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}
