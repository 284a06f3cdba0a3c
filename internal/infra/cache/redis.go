package cache

import (
	"context"
	"log/slog"

	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when Redis is not configured. A configured but
// unreachable server is an error.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	if cfg.Addr == "" {
		slog.Info("redis not configured; idempotency replay disabled")
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}
