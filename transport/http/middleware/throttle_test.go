package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestThrottle() (*throttleImpl, *clock, http.Handler) {
	cfg := &config.Config{}
	cfg.App.LoginThrottle.RequestsPerMinute = 60
	cfg.App.LoginThrottle.Burst = 2

	c := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	throttle := newThrottle(cfg, c.Now)

	handler := throttle.Login(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	return throttle, c, handler
}

func login(handler http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/staff/login", nil)
	req.RemoteAddr = ip + ":51000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Code
}

func TestThrottle_Login(t *testing.T) {
	_, c, handler := newTestThrottle()

	assert.Equal(t, http.StatusOK, login(handler, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, login(handler, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(handler, "10.0.0.1"))

	// Other clients keep their own bucket.
	assert.Equal(t, http.StatusOK, login(handler, "10.0.0.2"))

	c.now = c.now.Add(time.Second)
	assert.Equal(t, http.StatusOK, login(handler, "10.0.0.1"))
}

func TestThrottle_SweepsIdleVisitors(t *testing.T) {
	throttle, c, handler := newTestThrottle()

	login(handler, "10.0.0.1")

	c.now = c.now.Add(throttleIdleTTL + time.Minute)
	login(handler, "10.0.0.2")

	_, ok := throttle.visitors.Load("10.0.0.1")
	assert.False(t, ok)

	_, ok = throttle.visitors.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestThrottle_RotatingForwardedFor(t *testing.T) {
	_, _, handler := newTestThrottle()

	app := NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil, metrics.New())
	chain := app.RealIP(handler)

	allowed := 0

	for i := range 50 {
		req := httptest.NewRequest(http.MethodPost, "/staff/login", nil)
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))

		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)

		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 2, allowed)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarding headers are ignored", headers: map[string]string{"X-Forwarded-For": "1.1.1.1", "X-Real-IP": "4.4.4.4"}, remote: "3.3.3.3:1", want: "3.3.3.3"},
		{name: "remote addr", remote: "3.3.3.3:1234", want: "3.3.3.3"},
		{name: "remote without port", remote: "3.3.3.3", want: "3.3.3.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote

			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
