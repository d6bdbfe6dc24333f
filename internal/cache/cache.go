package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// viewKeyPattern matches every cached view and its etag shadow key, so
// InvalidateViews can drop them all in one sweep.
const viewKeyPattern = "view:*"

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetView(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagView(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, getEtagKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetView(ctx context.Context, key string, data []byte, validUntil time.Time) {
	log.Printf("creating cache entry %q, valid until %s...", key, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, key, data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for key %q: %v", key, err)
	}
}

func (c *Cache) SetEtagView(ctx context.Context, key string, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, getEtagKey(key), etag, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for etag key %q: %v", key, err)
	}
}

// InvalidateViews drops every cached view. Vote and lifecycle writes change
// what the rankings and public listings would show, so the whole view
// namespace goes at once rather than tracking which keys a write touched.
func (c *Cache) InvalidateViews(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, viewKeyPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func getEtagKey(key string) string {
	return key + "#etag"
}
