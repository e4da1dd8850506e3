package reservation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/reservation/model/dto"
	svcMocks "hotel/internal/domains/reservation/service/mocks"
	"hotel/internal/handlers/reservation"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func newRouter(t *testing.T) (*svcMocks.MockReservation, http.Handler) {
	t.Helper()

	svc := svcMocks.NewMockReservation(gomock.NewController(t))
	handler := reservation.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCreateReservation(t *testing.T) {
	const valid = `{"guest_id":1,"room_id":2,"check_in_date":"2024-06-01","check_out_date":"2024-06-03"}`

	tests := []struct {
		name      string
		body      string
		setupMock func(svc *svcMocks.MockReservation)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: valid,
			setupMock: func(svc *svcMocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error) {
						assert.Equal(t, int64(2), *req.RoomID)
						assert.Nil(t, req.Status)

						return dto.ReservationResponse{ID: 1, Status: "confirmed"}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing fields",
			body:      `{"guest_id":1}`,
			setupMock: func(_ *svcMocks.MockReservation) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"Missing required fields: room_id, check_in_date, check_out_date"}`,
		},
		{
			name:      "bad date",
			body:      `{"guest_id":1,"room_id":2,"check_in_date":"June 1st","check_out_date":"2024-06-03"}`,
			setupMock: func(_ *svcMocks.MockReservation) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"check_in_date must be an ISO-8601 date"}`,
		},
		{
			name:      "unknown status",
			body:      `{"guest_id":1,"room_id":2,"check_in_date":"2024-06-01","check_out_date":"2024-06-03","status":"pending"}`,
			setupMock: func(_ *svcMocks.MockReservation) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "overlap rejected",
			body: valid,
			setupMock: func(svc *svcMocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.ReservationResponse{}, failure.Conflict("Room is already reserved for these dates"))
			},
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Room is already reserved for these dates"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			rec := serve(router, http.MethodPost, "/reservations", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGetReservations(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]dto.ReservationResponse, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(reservations.status = :status AND reservations.room_id = :room_id AND reservations.guest_id = :guest_id)", where)
				assert.Equal(t, int64(3), args["room_id"])
				assert.Equal(t, int64(9), args["guest_id"])

				return []dto.ReservationResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/reservations?status=confirmed&room_id=3&guest_id=9", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed ids are ignored", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]dto.ReservationResponse, error) {
				assert.Empty(t, filter.Filters)

				return []dto.ReservationResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/reservations?room_id=abc", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("updates", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req dto.UpdateReservationRequest) (dto.ReservationResponse, error) {
				assert.Equal(t, "checked-in", *req.Status)

				return dto.ReservationResponse{ID: 5, Status: "checked-in"}, nil
			})

		rec := serve(router, http.MethodPatch, "/reservations/5", `{"status":"checked-in"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPatch, "/reservations/5", `{"id":8}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Unknown field \"id\""}`, rec.Body.String())
	})

	t.Run("non-numeric id", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPatch, "/reservations/x", `{}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Reservation not found"}`, rec.Body.String())
	})
}

func TestDeleteReservation(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), int64(6)).Return(nil)

	rec := serve(router, http.MethodDelete, "/reservations/6", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
