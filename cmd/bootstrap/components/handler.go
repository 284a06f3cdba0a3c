package components

import (
	"tour-booking/internal/handler"
	"tour-booking/internal/handler/api"
	"tour-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewVoucherHandler,
		api.NewPricingHandler,
		middleware.NewAuthMiddleware,
		func(
			auth *api.AuthHandler,
			booking *api.BookingHandler,
			voucher *api.VoucherHandler,
			pricing *api.PricingHandler,
		) handler.Handlers {
			return handler.Handlers{Auth: auth, Booking: booking, Voucher: voucher, Pricing: pricing}
		},
		func(
			auth *middleware.AuthMiddleware,
			idem *middleware.Idempotency,
			logger *middleware.Logger,
		) handler.Middlewares {
			return handler.Middlewares{Auth: auth, Idempotency: idem, Logger: logger}
		},
	),
	fx.Invoke(handler.NewRouter),
)
