package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tenant:slug:"

// RedisCache is a Cache backed by Redis, for deployments where several
// instances should share one tenant cache and see invalidations immediately.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache returns a Cache backed by the given Redis client. The client
// is not closed by Close; its lifecycle belongs to the caller.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		// Stale or corrupt entry; drop it so the next lookup refreshes.
		c.client.Del(ctx, redisKeyPrefix+key)
		return nil, false
	}
	return &t, true
}

func (c *RedisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.client.Set(ctx, redisKeyPrefix+key, raw, ttl)
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, redisKeyPrefix+key)
}

func (c *RedisCache) Close() error { return nil }
