package middleware

import (
	"log/slog"
	"slices"

	"tour-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the CORS policy. A "*" origin turns credentials off,
// since browsers reject credentialed wildcard responses.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		if corsCfg.AllowCredentials {
			slog.Warn("CORS wildcard origin configured; disabling credentials")
			corsCfg.AllowCredentials = false
		}
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("CORS middleware initialized",
		"AllowOrigins", cfg.AllowOrigins,
		"AllowCredentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}
