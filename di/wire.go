//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/internal/domains/auth/session"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	amenityRepository "hotel/internal/domains/amenity/repository"
	amenityService "hotel/internal/domains/amenity/service"
	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	reservationRepository "hotel/internal/domains/reservation/repository"
	reservationService "hotel/internal/domains/reservation/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepository "hotel/internal/domains/staff/repository"
	amenityHandler "hotel/internal/handlers/amenity"
	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	guestHandler "hotel/internal/handlers/guest"
	reservationHandler "hotel/internal/handlers/reservation"
	roomHandler "hotel/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuth,
	middleware.NewThrottle,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	guestRepository.New,
	roomRepository.New,
	reservationRepository.New,
	amenityRepository.New,
	amenityRepository.NewRoomAmenity,
	staffRepository.New,
)

var domains = wire.NewSet(
	guestService.New,
	roomService.New,
	reservationService.New,
	amenityService.New,
	availabilityService.New,
	session.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	guestHandler.New,
	roomHandler.New,
	reservationHandler.New,
	amenityHandler.New,
	availabilityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
