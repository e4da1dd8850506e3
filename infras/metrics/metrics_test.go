package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/infras/metrics"
)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()

	m.ObserveHTTP("/rooms/{id}", http.MethodGet, http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `hotel_http_requests_total{method="GET",route="/rooms/{id}",status="200"} 1`)
	assert.Contains(t, body, "hotel_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
