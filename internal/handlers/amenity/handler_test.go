package amenity_test

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
	"hotel/internal/domains/amenity/model/dto"
	svcMocks "hotel/internal/domains/amenity/service/mocks"
	"hotel/internal/handlers/amenity"
	"hotel/shared/failure"
)

func newRouter(t *testing.T) (*svcMocks.MockAmenity, http.Handler) {
	t.Helper()

	svc := svcMocks.NewMockAmenity(gomock.NewController(t))
	handler := amenity.New(svc, mocks.NewOtel())

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

func TestCreateAmenity(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateAmenityRequest) (dto.AmenityResponse, error) {
				assert.Equal(t, "WiFi", *req.Name)

				return dto.AmenityResponse{ID: 1, Name: "WiFi"}, nil
			})

		rec := serve(router, http.MethodPost, "/amenities", `{"name":"WiFi"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"name":"WiFi","description":null}`, rec.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/amenities", `{"description":"fast"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing required fields: name"}`, rec.Body.String())
	})
}

func TestGetAmenities(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]dto.AmenityResponse{{ID: 1, Name: "Pool"}}, nil)

	rec := serve(router, http.MethodGet, "/amenities", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Pool","description":null}]`, rec.Body.String())
}

func TestUpdateAmenity(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).Return(dto.AmenityResponse{}, failure.NotFound("Amenity"))

	rec := serve(router, http.MethodPatch, "/amenities/3", `{"name":"Spa"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Amenity not found"}`, rec.Body.String())
}

func TestDeleteAmenity(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

		rec := serve(router, http.MethodDelete, "/amenities/3", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodDelete, "/amenities/pool", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
