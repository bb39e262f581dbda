package analytics

import (
	"context"
	"encoding/json"
	"time"
)

const cacheScope = "analytics"

// KV is the slice of the redis client the analytics cache needs.
type KV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Cache stores computed month analytics in redis with a short TTL. A nil
// Cache is a no-op, so the service runs without redis in tests.
type Cache struct {
	kv  KV
	ttl time.Duration
}

// NewCache wraps a redis client for analytics caching.
func NewCache(kv KV, ttl time.Duration) *Cache {
	if kv == nil {
		return nil
	}
	return &Cache{kv: kv, ttl: ttl}
}

func (c *Cache) get(ctx context.Context, monthKey string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.kv.Get(ctx, c.kv.CacheKey(cacheScope, monthKey))
	if err != nil || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (c *Cache) put(ctx context.Context, monthKey string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Cache write failures degrade to recomputation on the next request.
	_ = c.kv.Set(ctx, c.kv.CacheKey(cacheScope, monthKey), string(raw), c.ttl)
}

// InvalidateMonth drops the cached analytics for one month. The sales, spiff
// and trade-in services call this after every write.
func (c *Cache) InvalidateMonth(ctx context.Context, monthKey string) error {
	if c == nil {
		return nil
	}
	return c.kv.Del(ctx, c.kv.CacheKey(cacheScope, monthKey))
}
