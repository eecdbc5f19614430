package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces memoized aggregates.
const RedisKeyPrefix = "touchpoint:analytics:"

// RedisCache shares memoized aggregates across server instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. A zero TTL stores keys
// without expiry.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.CampaignAnalytics, bool, error) {
	data, err := c.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CampaignAnalytics{}, false, nil
	}
	if err != nil {
		return domain.CampaignAnalytics{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var v domain.CampaignAnalytics
	if err := json.Unmarshal(data, &v); err != nil {
		return domain.CampaignAnalytics{}, false, fmt.Errorf("decode cached aggregate %s: %w", key, err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v domain.CampaignAnalytics) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode aggregate: %w", err)
	}
	if err := c.client.Set(ctx, RedisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
