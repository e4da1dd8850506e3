package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	"hotel/shared/cache"
)

func newLimited(t *testing.T, enable bool) (*miniredis.Miniredis, http.Handler) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()), metrics.New())

	return server, app.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.RemoteAddr = "10.1.1.1:4000"
	req.Header.Set("User-Agent", "test")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("fixed window", func(t *testing.T) {
		server, handler := newLimited(t, true)

		first := hit(handler)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, hit(handler).Code)

		limited := hit(handler)
		assert.Equal(t, http.StatusTooManyRequests, limited.Code)
		assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", limited.Header().Get("Retry-After"))

		server.FastForward(61 * time.Second)
		assert.Equal(t, http.StatusOK, hit(handler).Code)
	})

	t.Run("disabled", func(t *testing.T) {
		_, handler := newLimited(t, false)

		for range 5 {
			assert.Equal(t, http.StatusOK, hit(handler).Code)
		}
	})

	t.Run("redis down lets requests through", func(t *testing.T) {
		server, handler := newLimited(t, true)
		server.Close()

		assert.Equal(t, http.StatusOK, hit(handler).Code)
	})
}
