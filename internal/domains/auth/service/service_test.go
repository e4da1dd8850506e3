package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	authMocks "hotel/internal/domains/auth/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/internal/domains/auth/session"
	staffMocks "hotel/internal/domains/staff/mocks"
	staffModel "hotel/internal/domains/staff/model"
	"hotel/shared/failure"
)

// "password" hashed with bcrypt
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	staff    *staffMocks.MockStaff
	sessions *authMocks.MockStore
	signer   *jwtMocks.MockSigner
	svc      service.Auth
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		staff:    staffMocks.NewMockStaff(ctrl),
		sessions: authMocks.NewMockStore(ctrl),
		signer:   jwtMocks.NewMockSigner(ctrl),
	}
	f.svc = service.New(f.staff, f.sessions, f.signer, mocks.NewOtel())

	return f
}

func signupRequest(pw string) dto.SignupRequest {
	return dto.SignupRequest{
		Name:     ptr("Kim"),
		Email:    ptr("kim@hotel.com"),
		Password: ptr(pw),
		Position: ptr("Manager"),
	}
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name:     "registers",
			password: "longenough",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.staff.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, staff staffModel.Staff) (int64, error) {
						assert.NotEqual(t, "longenough", staff.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte("longenough")))
						assert.False(t, staff.IsAdmin)

						return 8, nil
					})
			},
		},
		{
			name:      "short password creates nothing",
			password:  "short",
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Password must be at least 8 characters",
		},
		{
			name:     "password longer than bcrypt accepts",
			password: strings.Repeat("x", 73),
			setupMock: func(f fixture) {
				f.staff.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Password must be at most 72 bytes",
		},
		{
			name:     "email already registered",
			password: "longenough",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
			wantMsg:  "Email already registered",
		},
		{
			name:     "registered concurrently",
			password: "longenough",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.staff.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), &pq.Error{Code: "23505", Constraint: staffModel.ConstraintEmailUnique})
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "storage failure",
			password: "longenough",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Registration failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			res, err := f.svc.Signup(context.Background(), signupRequest(tt.password))
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, dto.SignupResponse{ID: 8, Name: "Kim", Email: "kim@hotel.com", Position: "Manager"}, res)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	staff := staffModel.Staff{ID: 3, Name: "Kim", Email: "kim@hotel.com", Position: "Manager", PasswordHash: passwordHash}

	t.Run("opens a session", func(t *testing.T) {
		f := setup(t)

		var tokenID string

		f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
		f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sess session.Session) error {
				assert.Equal(t, int64(3), sess.StaffID)
				assert.NotEmpty(t, sess.TokenID)

				tokenID = sess.TokenID

				return nil
			})
		f.signer.EXPECT().Sign(gomock.Any(), int64(3)).
			DoAndReturn(func(id string, _ int64) (string, error) {
				assert.Equal(t, tokenID, id)

				return "signed", nil
			})

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: ptr("kim@hotel.com"), Password: ptr("password")})
		require.NoError(t, err)
		assert.Equal(t, "signed", res.Token)
		assert.Equal(t, "Kim", res.Staff.Name)
	})

	rejected := []struct {
		name      string
		password  string
		setupMock func(f fixture)
	}{
		{
			name:     "unknown email",
			password: "password",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, nil)
			},
		},
		{
			name:     "wrong password",
			password: "letmein!",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
			},
		},
		{
			name:     "lookup error",
			password: "password",
			setupMock: func(f fixture) {
				f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, errors.New("db down"))
			},
		},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: ptr("kim@hotel.com"), Password: ptr(tt.password)})
			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			assert.EqualError(t, err, "Invalid email or password")
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("deletes the session", func(t *testing.T) {
		f := setup(t)

		f.signer.EXPECT().Verify("signed").Return(&jwt.Claims{TokenID: "tok", StaffID: 3}, nil)
		f.sessions.EXPECT().Delete(gomock.Any(), "tok").Return(errors.New("redis down"))

		f.svc.Logout(context.Background(), "signed")
	})

	t.Run("ignores a bad token", func(t *testing.T) {
		f := setup(t)

		f.signer.EXPECT().Verify("garbage").Return(nil, jwt.ErrInvalidToken)

		f.svc.Logout(context.Background(), "garbage")
	})

	t.Run("no cookie", func(t *testing.T) {
		f := setup(t)

		f.svc.Logout(context.Background(), "")
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	claims := &jwt.Claims{TokenID: "tok", StaffID: 3}

	t.Run("resolves staff", func(t *testing.T) {
		f := setup(t)

		f.signer.EXPECT().Verify("signed").Return(claims, nil)
		f.sessions.EXPECT().Get(gomock.Any(), "tok").Return(session.Session{TokenID: "tok", StaffID: 3}, nil)
		f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{ID: 3, Name: "Kim", IsAdmin: true}, nil)

		res, err := f.svc.Authenticate(context.Background(), "signed")
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
		assert.True(t, res.IsAdmin)
	})

	rejected := []struct {
		name      string
		token     string
		setupMock func(f fixture)
	}{
		{name: "no token", setupMock: func(_ fixture) {}},
		{
			name:  "expired token",
			token: "signed",
			setupMock: func(f fixture) {
				f.signer.EXPECT().Verify("signed").Return(nil, jwt.ErrExpiredToken)
			},
		},
		{
			name:  "logged out",
			token: "signed",
			setupMock: func(f fixture) {
				f.signer.EXPECT().Verify("signed").Return(claims, nil)
				f.sessions.EXPECT().Get(gomock.Any(), "tok").Return(session.Session{}, session.ErrNotFound)
			},
		},
		{
			name:  "session of another staff member",
			token: "signed",
			setupMock: func(f fixture) {
				f.signer.EXPECT().Verify("signed").Return(claims, nil)
				f.sessions.EXPECT().Get(gomock.Any(), "tok").Return(session.Session{TokenID: "tok", StaffID: 4}, nil)
			},
		},
		{
			name:  "staff deleted",
			token: "signed",
			setupMock: func(f fixture) {
				f.signer.EXPECT().Verify("signed").Return(claims, nil)
				f.sessions.EXPECT().Get(gomock.Any(), "tok").Return(session.Session{TokenID: "tok", StaffID: 3}, nil)
				f.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, nil)
			},
		},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			_, err := f.svc.Authenticate(context.Background(), tt.token)
			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			assert.EqualError(t, err, "Unauthorized")
		})
	}
}
