package auth

import (
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Auth
	throttle middleware.Throttle
	cfg      *config.Config
	otel     otel.Otel
}

func New(service service.Auth, throttle middleware.Throttle, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		throttle: throttle,
		cfg:      cfg,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Post("/signup", handler.Signup)
		routerGroup.With(handler.throttle.Login).Post("/login", handler.Login)
		routerGroup.Delete("/logout", handler.Logout)
		routerGroup.Get("/check-auth", handler.CheckAuth)
	})
}

// Signup registers a staff account.
// @Summary Register a staff member
// @Description Password must be at least 8 characters. Only a bcrypt hash is stored.
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /staff/signup [post]
func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signup")
	defer scope.End()

	req := dto.SignupRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate signup request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Signup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up staff")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staff registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Login opens a staff session.
// @Summary Log in
// @Description Sets the HttpOnly session cookie and returns the staff record.
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} staffDto.StaffResponse
// @Failure 401 {object} response.Error
// @Failure 429 {object} response.Error
// @Router /staff/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate login request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to log in staff")

		response.WithError(w, err)

		return
	}

	http.SetCookie(w, handler.cookie(res.Token, handler.cfg.Session.TTLMinutes*constant.MinutesToSeconds))

	scope.AddEvent("Staff logged in successfully")

	response.WithJSON(w, http.StatusOK, res.Staff)
}

// Logout ends the current session. It succeeds without a session too.
// @Summary Log out
// @Tags Staff
// @Success 204
// @Router /staff/logout [delete]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	handler.service.Logout(ctx, middleware.SessionToken(r, handler.cfg.Session.CookieName))

	http.SetCookie(w, handler.cookie("", -1))

	response.WithNoContent(w)
}

// CheckAuth returns the staff member behind the session cookie.
// @Summary Current staff member
// @Tags Staff
// @Produce json
// @Success 200 {object} staffDto.StaffResponse
// @Failure 401 {object} response.Error
// @Router /staff/check-auth [get]
func (handler *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAuth")
	defer scope.End()

	staff, err := handler.service.Authenticate(ctx, middleware.SessionToken(r, handler.cfg.Session.CookieName))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// cookie builds the session cookie; a negative maxAge expires it.
func (handler *Handler) cookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     handler.cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}

	return cookie
}
