package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	svcMocks "hotel/internal/domains/auth/service/mocks"
	staffDto "hotel/internal/domains/staff/model/dto"
	"hotel/internal/handlers/auth"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
)

const cookieName = "hotel_session"

func newRouter(t *testing.T) (*svcMocks.MockAuth, http.Handler) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.CookieName = cookieName
	cfg.Session.TTLMinutes = 60
	cfg.Session.Secure = true
	cfg.App.LoginThrottle.RequestsPerMinute = 60
	cfg.App.LoginThrottle.Burst = 2

	svc := svcMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, middleware.NewThrottle(cfg), cfg, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *svcMocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"name":"Ann","email":"ann@hotel.com","password":"password","position":"Manager"}`,
			setupMock: func(svc *svcMocks.MockAuth) {
				svc.EXPECT().Signup(gomock.Any(), gomock.Any()).
					Return(dto.SignupResponse{ID: 1, Name: "Ann", Email: "ann@hotel.com", Position: "Manager"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"id":1,"name":"Ann","email":"ann@hotel.com","position":"Manager"}`,
		},
		{
			name:      "missing fields",
			body:      `{"email":"ann@hotel.com"}`,
			setupMock: func(_ *svcMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"Missing required fields: name, password, position"}`,
		},
		{
			name:      "invalid email",
			body:      `{"name":"Ann","email":"ann@hotel","password":"password","position":"Manager"}`,
			setupMock: func(_ *svcMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"Invalid email format"}`,
		},
		{
			name: "duplicate",
			body: `{"name":"Ann","email":"ann@hotel.com","password":"password","position":"Manager"}`,
			setupMock: func(svc *svcMocks.MockAuth) {
				svc.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(dto.SignupResponse{}, failure.Conflict("Email already registered"))
			},
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Email already registered"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			rec := serve(router, jsonRequest(http.MethodPost, "/staff/signup", tt.body))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	const body = `{"email":"ann@hotel.com","password":"password"}`

	t.Run("sets the session cookie", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
				assert.Equal(t, "ann@hotel.com", *req.Email)

				return dto.LoginResponse{Token: "signed", Staff: staffDto.StaffResponse{ID: 1, Name: "Ann"}}, nil
			})

		rec := serve(router, jsonRequest(http.MethodPost, "/staff/login", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "signed")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookieName, cookies[0].Name)
		assert.Equal(t, "signed", cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("Invalid email or password"))

		rec := serve(router, jsonRequest(http.MethodPost, "/staff/login", body))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("throttled", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("Invalid email or password")).Times(2)

		for range 2 {
			assert.Equal(t, http.StatusUnauthorized, serve(router, jsonRequest(http.MethodPost, "/staff/login", body)).Code)
		}

		rec := serve(router, jsonRequest(http.MethodPost, "/staff/login", body))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Logout(gomock.Any(), "signed")

	req := httptest.NewRequest(http.MethodDelete, "/staff/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "signed"})

	rec := serve(router, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestCheckAuth(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Authenticate(gomock.Any(), "signed").
			Return(staffDto.StaffResponse{ID: 1, Name: "Ann", Email: "ann@hotel.com", Position: "Manager"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/staff/check-auth", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "signed"})

		rec := serve(router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"name":"Ann","email":"ann@hotel.com","position":"Manager","is_admin":false}`, rec.Body.String())
	})

	t.Run("no session", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Authenticate(gomock.Any(), "").Return(staffDto.StaffResponse{}, failure.Unauthorized("Unauthorized"))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/staff/check-auth", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})
}
