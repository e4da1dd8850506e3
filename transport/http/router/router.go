package router

//nolint:revive
import (
	"hotel/config"
	_ "hotel/docs"
	"hotel/infras/metrics"
	"hotel/internal/handlers/amenity"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/guest"
	"hotel/internal/handlers/reservation"
	"hotel/internal/handlers/room"
	"hotel/transport/http/middleware"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Guest        guest.Handler
	Room         room.Handler
	Reservation  reservation.Handler
	Amenity      amenity.Handler
	Availability availability.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.Auth
	Metrics        *metrics.Metrics
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		r.App.RealIP,
		r.App.RequestLog,
		chiMiddleware.Recoverer,
		r.App.Tracing,
		r.App.Metrics,
		r.App.CORS(),
	)

	if timeout := r.Config.Server.RequestTimeoutSeconds; timeout > 0 {
		router.Use(chiMiddleware.Timeout(time.Duration(timeout) * time.Second))
	}

	router.Use(r.App.RateLimit)

	if path := r.Config.Server.MetricsPath; path != "" {
		router.Handle(path, r.Metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.DomainHandlers.Auth.Router(router)

	router.Group(func(routerGroup chi.Router) {
		if r.Config.App.RequireAuth {
			routerGroup.Use(r.Auth.Guard)
		}

		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Amenity.Router(routerGroup)
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.Auth,
	metrics *metrics.Metrics,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
		Metrics:        metrics,
		Config:         cfg,
	}
}
