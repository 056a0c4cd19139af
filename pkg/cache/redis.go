package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis caches resources in a shared Redis instance so multiple geocoder
// nodes behind the same Redis see each other's shard fetches.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// OpenRedis opens a Redis-backed cache for the given address. An empty
// address returns nil, which callers treat as "no shared cache".
func OpenRedis(addr, password string, db int) *Redis {
	if addr == "" {
		return nil
	}
	return NewRedis(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (r *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}
