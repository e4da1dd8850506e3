package middleware

import (
	"context"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"
)

// Auth requires a valid staff session cookie.
type Auth interface {
	Guard(next http.Handler) http.Handler
}

type authImpl struct {
	service service.Auth
	otel    otel.Otel
	cfg     *config.Config
}

func NewAuth(service service.Auth, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		service: service,
		otel:    otel,
		cfg:     cfg,
	}
}

// Guard resolves the session cookie and stores the staff id in the request
// context. Any failure is a 401.
func (m *authImpl) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.method":     r.Method,
			"http.path":       r.URL.Path,
		})

		staff, err := m.service.Authenticate(ctx, SessionToken(r, m.cfg.Session.CookieName))
		if err != nil {
			scope.TraceError(err)
			scope.End()

			response.WithError(w, err)

			return
		}

		scope.End()

		ctx = context.WithValue(r.Context(), constant.ContextKeyStaffID, staff.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionToken returns the session cookie value, empty when absent.
func SessionToken(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
