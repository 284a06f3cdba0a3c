package bootstrap

import (
	"log/slog"

	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		middleware.NewLogger,
		NewSlogLogger,
	),
)

func NewSlogLogger(logger *middleware.Logger) *slog.Logger {
	return logger.GetSlogLogger()
}

func logConfig(cfg config.Config) config.LogConfig {
	return cfg.Log
}
