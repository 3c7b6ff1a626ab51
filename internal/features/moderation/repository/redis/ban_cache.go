package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mustafaygt66/EMKO/internal/common/cache"
)

// BanCache remembers ban lookups for a short time. Both outcomes are
// cached so that unbanned users do not hit the database on every request.
type BanCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewBanCache(client redis.Cmdable, ttl time.Duration) *BanCache {
	return &BanCache{client: client, ttl: ttl}
}

func key(userID string) string {
	return cache.BanKeyPrefix + userID
}

// Get returns (banned, found, err).
func (c *BanCache) Get(ctx context.Context, userID string) (bool, bool, error) {
	v, err := c.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v == "1", true, nil
}

func (c *BanCache) Set(ctx context.Context, userID string, banned bool) error {
	v := "0"
	if banned {
		v = "1"
	}
	return c.client.Set(ctx, key(userID), v, c.ttl).Err()
}

func (c *BanCache) Forget(ctx context.Context, userID string) error {
	return c.client.Del(ctx, key(userID)).Err()
}
