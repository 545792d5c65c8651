//go:build wireinject
// +build wireinject

package di

import (
	"bilateral/config"
	"bilateral/infras/kafka"
	"bilateral/infras/mail"
	"bilateral/infras/memdb"
	"bilateral/infras/otel"
	"bilateral/infras/postgres"
	"bilateral/infras/redis"
	"bilateral/internal/seed"
	"bilateral/shared/cache"
	"bilateral/transport/http"
	"bilateral/transport/http/middleware"
	"bilateral/transport/http/router"

	bookingNotifier "bilateral/internal/domains/booking/notifier"
	bookingRepository "bilateral/internal/domains/booking/repository"
	bookingService "bilateral/internal/domains/booking/service"
	notificationService "bilateral/internal/domains/notification/service"
	slotRepository "bilateral/internal/domains/slot/repository"

	"github.com/google/wire"

	bookingHandler "bilateral/internal/handlers/booking"
	healthHandler "bilateral/internal/handlers/health"
	notificationHandler "bilateral/internal/handlers/notification"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	memdb.Shared,
	otel.New,
	redis.New,
	kafka.New,
	mail.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCounter,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingNotifier.New,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	bookingNotifier.NewEmailChannel,
	notificationService.New,
)

var domains = wire.NewSet(
	slotDomain,
	bookingDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	notificationHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSeeder() *seed.Seeder {
	wire.Build(
		configurations,
		postgres.New,
		memdb.Shared,
		otel.New,
		slotDomain,
		bookingRepository.New,
		seed.New,
	)

	return &seed.Seeder{}
}
