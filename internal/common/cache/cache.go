package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Key namespaces shared by the feature packages.
const (
	ListingsSnapshotPrefix = "emko:listings:all:"
	ListingsGenerationKey  = "emko:listings:gen"
	BanKeyPrefix           = "emko:ban:"
)

type CacheService struct {
	client redis.Cmdable
}

func NewCacheService(client redis.Cmdable) *CacheService {
	return &CacheService{client: client}
}

// Get decodes the JSON value stored at key into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// GetOrSet reads key into dest, or calls load, stores its result for ttl
// and decodes it into dest. A failing cache write does not fail the call.
func (c *CacheService) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := load()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_ = c.client.Set(ctx, key, data, ttl).Err()

	return json.Unmarshal(data, dest)
}

// ListingsSnapshotKey returns the snapshot key of the current listings
// generation.
func (c *CacheService) ListingsSnapshotKey(ctx context.Context) (string, error) {
	gen, err := c.client.Get(ctx, ListingsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return ListingsSnapshotPrefix + strconv.FormatInt(gen, 10), nil
}

// InvalidateListings starts a new generation. A snapshot loaded before the
// bump is written under the old key and never read again.
func (c *CacheService) InvalidateListings(ctx context.Context) error {
	return c.client.Incr(ctx, ListingsGenerationKey).Err()
}
