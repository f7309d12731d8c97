package bootstrap

import (
	"checkout-fulfillment/internal/handler/middleware"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
