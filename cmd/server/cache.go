package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/touchpoint-analytics/internal/analytics"
	"github.com/ignite/touchpoint-analytics/internal/config"
	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
)

// newMemo builds the aggregate memo for the configured backend. A Redis
// backend that cannot be reached falls back to the in-process cache. The
// returned func releases the backend.
func newMemo(ctx context.Context, cfg *config.Config) (*analytics.Memo, func()) {
	ttl := cfg.Analytics.CacheTTL()

	switch cfg.Analytics.CacheBackend {
	case config.CacheNone:
		logger.Info("analytics cache disabled")
		return analytics.NewMemo(nil), func() {}

	case config.CacheRedis:
		client := newRedisClient(cfg.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unavailable, using in-memory analytics cache", "addr", cfg.Redis.Addr, "error", err.Error())
			client.Close()
			break
		}
		logger.Info("analytics cache on redis", "addr", cfg.Redis.Addr, "ttl", ttl.String())
		return analytics.NewMemo(analytics.NewRedisCache(client, ttl)), func() { client.Close() }
	}

	logger.Info("analytics cache in memory", "ttl", ttl.String(), "max_entries", cfg.Analytics.CacheMaxEntries)
	return analytics.NewMemo(analytics.NewMemoryCache(ttl, cfg.Analytics.CacheMaxEntries)), func() {}
}

// newRedisClient accepts either a redis:// URL or a bare host:port.
func newRedisClient(cfg config.RedisConfig) *redis.Client {
	if opts, err := redis.ParseURL(cfg.Addr); err == nil {
		if cfg.Password != "" {
			opts.Password = cfg.Password
		}
		return redis.NewClient(opts)
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
