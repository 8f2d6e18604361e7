//go:build wireinject
// +build wireinject

package di

import (
	"svim/config"
	"svim/infras/otel"
	"svim/infras/redis"
	"svim/shared/cache"
	"svim/shared/metrics"
	"svim/transport/http"
	"svim/transport/http/middleware"
	"svim/transport/http/router"

	availabilityRepository "svim/internal/domains/availability/repository"
	availabilityService "svim/internal/domains/availability/service"
	availabilityHandler "svim/internal/handlers/availability"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.NewStore,
	availabilityService.NewClock,
	availabilityService.New,
)

var domains = wire.NewSet(
	availabilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
