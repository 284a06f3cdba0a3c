package bootstrap

import (
	"time"

	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/pkg/password"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		password.NewHasher,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, duration)
}
