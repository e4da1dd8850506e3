package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	svcMocks "hotel/internal/domains/auth/service/mocks"
	staffDto "hotel/internal/domains/staff/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
)

func TestAuth_Guard(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.CookieName = "hotel_session"

	tests := []struct {
		name      string
		cookie    string
		setupMock func(svc *svcMocks.MockAuth)
		wantCode  int
	}{
		{
			name:   "valid session",
			cookie: "signed",
			setupMock: func(svc *svcMocks.MockAuth) {
				svc.EXPECT().Authenticate(gomock.Any(), "signed").Return(staffDto.StaffResponse{ID: 7}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "no cookie",
			setupMock: func(svc *svcMocks.MockAuth) {
				svc.EXPECT().Authenticate(gomock.Any(), "").Return(staffDto.StaffResponse{}, failure.Unauthorized("Unauthorized"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := svcMocks.NewMockAuth(gomock.NewController(t))
			tt.setupMock(svc)

			guard := middleware.NewAuth(svc, mocks.NewOtel(), cfg)

			handler := guard.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, int64(7), r.Context().Value(constant.ContextKeyStaffID))
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/guests", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
