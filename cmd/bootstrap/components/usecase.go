package components

import (
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/usecase"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/pricing"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecasePricingModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewVoucherQueries,
		func(reader shared.BookingReader, cfg config.Config) queries.BookingQueries {
			return queries.NewBookingQueries(reader, cfg.Booking.DefaultListLimit)
		},
	),
)

var usecasePricingModule = fx.Module("usecase/pricing",
	fx.Provide(
		// the voucher engine's Validate is what the resolver prices with
		func(q queries.VoucherQueries) pricing.VoucherValidator { return q },
		pricing.NewResolver,
		pricing.NewQuoteService,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewVoucherCommands,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
