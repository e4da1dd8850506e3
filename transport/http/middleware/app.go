package middleware

import (
	"fmt"
	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/shared/cache"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	RealIP(next http.Handler) http.Handler
	Tracing(next http.Handler) http.Handler
	RequestLog(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	RateLimit(next http.Handler) http.Handler
	CORS() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	cache   cache.RedisCache
	metrics *metrics.Metrics
	proxies []netip.Prefix
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, metrics *metrics.Metrics) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		metrics: metrics,
		proxies: parseProxies(config.App.TrustedProxies),
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"app.name":         a.config.App.Name,
			"http.path":        r.URL.Path,
			"http.route":       routePattern(r),
			"http.method":      r.Method,
			"http.user_agent":  r.UserAgent(),
			"http.host":        r.Host,
			"http.source":      clientIP(r),
			"http.status_code": ww.Status(),
		})
	})
}

// RequestLog writes one zerolog line per request.
func (a *appMiddleware) RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		event := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", routePattern(r)).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote", clientIP(r)).
			Msg("http request")
	})
}

func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		a.metrics.ObserveHTTP(routePattern(r), r.Method, ww.Status(), time.Since(start))
	})
}

// CORS is a pass-through unless APP_CORS_ENABLE is set. Credentials are
// allowed so the session cookie reaches the API from the browser.
func (a *appMiddleware) CORS() func(http.Handler) http.Handler {
	corsConfig := a.config.App.CORS
	if !corsConfig.Enable {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}

// routePattern is read after the handler ran, once chi has resolved the route.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	return unmatchedRoute
}
