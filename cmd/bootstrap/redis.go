package bootstrap

import (
	"context"

	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/infra/cache"
	"tour-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewIdempotency,
	),
)

// NewIdempotency returns pass-through middleware when REDIS_ADDR is unset.
func NewIdempotency(lc fx.Lifecycle, cfg config.Config) (*middleware.Idempotency, error) {
	idemCfg := middleware.IdempotencyConfig{
		TTL:           cfg.Redis.IdemTTL,
		ProcessingTTL: cfg.Redis.ProcessTTL,
	}

	client, cleanup, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return middleware.NewIdempotency(nil, idemCfg), nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return middleware.NewIdempotency(cache.NewIdempotencyStore(client), idemCfg), nil
}
