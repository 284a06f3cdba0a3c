package bootstrap

import (
	"tour-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	fx.Provide(logConfig),
	LoggerModule,
	JWTModule,
	RedisModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
