package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores decoded score maps between feed requests.
type Cache interface {
	Get(ctx context.Context, key string) (map[string]int, error)
	Set(ctx context.Context, key string, scores map[string]int, ttl time.Duration) error
}

type memoryEntry struct {
	scores  map[string]int
	expires time.Time
}

// MemoryCache is an in-process Cache. It is the default when no Redis
// address is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get implements Cache. Expired entries are misses.
func (c *MemoryCache) Get(ctx context.Context, key string) (map[string]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	return copyScores(e.scores), nil
}

// Set implements Cache.
func (c *MemoryCache) Set(ctx context.Context, key string, scores map[string]int, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{scores: copyScores(scores), expires: c.now().Add(ttl)}
	return nil
}

func copyScores(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// RedisCache stores score maps as JSON values in Redis.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache wraps a Redis client. Keys are stored under prefix.
func NewRedisCache(client redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (map[string]int, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var scores map[string]int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached scores: %w", err)
	}
	return scores, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, scores map[string]int, ttl time.Duration) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}
