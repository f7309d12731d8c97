package middleware

import (
	"log/slog"
	"slices"

	"checkout-fulfillment/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always exposes X-Request-ID so the checkout UI can quote it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := cfg.ExposeHeaders
	if !slices.Contains(expose, HeaderRequestID) {
		expose = append(slices.Clone(expose), HeaderRequestID)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "expose_headers", expose)
	return cors.New(corsCfg)
}
