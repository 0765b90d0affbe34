package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nao1215/trustguard/internal/model"
)

// DefaultTTL is how long a company finding stays cached.
const DefaultTTL = 24 * time.Hour

// keyPrefix namespaces TrustGuard keys in a shared Redis instance.
const keyPrefix = "trustguard:company:"

// NewRedisClient parses redisURL and verifies the server answers PING.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// CompanyCache stores CompanyFinding values as JSON with a TTL.
// It satisfies company.Cache.
type CompanyCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCompanyCache creates a cache on client. A non-positive ttl selects DefaultTTL.
func NewCompanyCache(client redis.UniversalClient, ttl time.Duration) *CompanyCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CompanyCache{client: client, ttl: ttl}
}

// Key returns the Redis key for a cache key.
func Key(key string) string {
	return keyPrefix + key
}

// Get returns the cached finding for key. A missing key is not an error.
func (c *CompanyCache) Get(ctx context.Context, key string) (model.CompanyFinding, bool, error) {
	data, err := c.client.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.CompanyFinding{}, false, nil
	}
	if err != nil {
		return model.CompanyFinding{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var f model.CompanyFinding
	if err := json.Unmarshal(data, &f); err != nil {
		return model.CompanyFinding{}, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return f, true, nil
}

// Set stores the finding for key.
func (c *CompanyCache) Set(ctx context.Context, key string, f model.CompanyFinding) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, Key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *CompanyCache) Close() error {
	return c.client.Close()
}
