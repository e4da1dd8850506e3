package http

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"hotel/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type HTTP struct {
	Config    *config.Config
	Router    router.Router
	DB        *postgres.Connection
	Redis     *redis.Client
	Publisher kafka.Publisher
	Otel      otel.Otel

	state   atomic.Int32
	once    sync.Once
	handler http.Handler
}

func New(
	cfg *config.Config,
	r router.Router,
	db *postgres.Connection,
	redisClient *redis.Client,
	publisher kafka.Publisher,
	ot otel.Otel,
) *HTTP {
	return &HTTP{
		Config:    cfg,
		Router:    r,
		DB:        db,
		Redis:     redisClient,
		Publisher: publisher,
		Otel:      ot,
	}
}

// Serve blocks until SIGINT/SIGTERM, then drains through the grace and
// cleanup periods before closing the server and its dependencies.
func (h *HTTP) Serve() {
	h.once.Do(h.setup)

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		h.drain()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped with error")
	}

	h.close()

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// ServeHTTP lets the whole application be mounted as a single handler. The
// router is built on the first call.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.once.Do(h.setup)

	h.handler.ServeHTTP(w, r)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setup() {
	mux := chi.NewRouter()

	h.Router.SetupRoutes(mux)
	mux.Get("/health", h.health)

	h.handler = mux
	h.state.Store(int32(ServerStateReady))
}

func (h *HTTP) health(w http.ResponseWriter, r *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	if h.DB != nil {
		if err := h.DB.Ping(r.Context()); err != nil {
			log.Error().Err(err).Msg("health check: database unreachable")

			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, "OK")
}

func (h *HTTP) drain() {
	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)
}

func (h *HTTP) close() {
	if h.Publisher != nil {
		if err := h.Publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Kafka publisher")
		}
	}

	if h.Redis != nil {
		if err := h.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis client")
		}
	}

	if h.DB != nil {
		h.DB.Close()
	}

	if h.Otel != nil {
		if err := h.Otel.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to shut down tracer")
		}
	}
}
