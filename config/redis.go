package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the Redis connection used by the auth middleware
// cache. Returns nil when Redis is unconfigured or unreachable; callers
// treat a nil client as "caching disabled".
func ConnectRedis(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, employee caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("Redis connection failed, caching disabled", "error", err)
		return nil
	}

	slog.Info("Redis connection established")
	return rdb
}
