// Package cache is a small redis-backed response cache for the dashboard
// endpoints. The store only changes on a full reload, so short TTLs keep
// the aggregates cheap without a coherent invalidation protocol.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a cache over rdb. A nil client yields a pass-through cache
// (every Get misses, Set is a no-op), so callers never branch on config.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	// Cache errors are invisible to callers: the next request recomputes.
	_ = c.rdb.Set(ctx, key, val, c.ttl).Err()
}
