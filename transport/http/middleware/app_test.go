package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
)

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := metrics.New()
	app := NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil, m)

	router := chi.NewRouter()
	router.Use(app.Metrics, app.RequestLog, app.Tracing)
	router.Get("/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/12", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, rec.Body.String(), `hotel_http_requests_total{method="GET",route="/rooms/{id}",status="418"} 1`)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowCredentials = true
	cfg.App.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	app := NewAppMiddleware(mocks.NewOtel(), cfg, nil, metrics.New())
	handler := app.CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/guests", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
