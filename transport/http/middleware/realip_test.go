package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
)

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "untrusted peer keeps its address",
			remote:  "203.0.113.9:40000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "203.0.113.9",
		},
		{
			name:    "trusted proxy forwards the client",
			proxies: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:40000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "198.51.100.1",
		},
		{
			name:    "spoofed leftmost hop is skipped",
			proxies: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:40000",
			headers: map[string]string{"X-Forwarded-For": "1.1.1.1, 198.51.100.1, 10.9.9.9"},
			want:    "198.51.100.1",
		},
		{
			name:    "single trusted address",
			proxies: []string{"192.0.2.10"},
			remote:  "192.0.2.10:40000",
			headers: map[string]string{"X-Real-IP": " 198.51.100.7 "},
			want:    "198.51.100.7",
		},
		{
			name:    "garbage header is ignored",
			proxies: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:40000",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:    "10.1.2.3",
		},
		{
			name:    "malformed proxy entries are dropped",
			proxies: []string{"nonsense", ""},
			remote:  "10.1.2.3:40000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.TrustedProxies = tt.proxies

			app := NewAppMiddleware(mocks.NewOtel(), cfg, nil, metrics.New())

			var got string

			handler := app.RealIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = clientIP(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote

			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
