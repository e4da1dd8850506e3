package room_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/room/model/dto"
	svcMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func newRouter(t *testing.T) (*svcMocks.MockRoom, http.Handler) {
	t.Helper()

	svc := svcMocks.NewMockRoom(gomock.NewController(t))
	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCreateRoom(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
				assert.Nil(t, req.Status)
				assert.InDelta(t, 99.5, *req.Price, 0.001)

				return dto.RoomResponse{ID: 1, RoomNumber: "101", Status: "available"}, nil
			})

		rec := serve(router, http.MethodPost, "/rooms",
			strings.NewReader(`{"room_number":"101","room_type":"Single","price":99.5,"capacity":1}`), "application/json")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"available"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/rooms", strings.NewReader(`{"room_type":"Single"}`), "application/json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing required fields: room_number, price, capacity"}`, rec.Body.String())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/rooms",
			strings.NewReader(`{"room_number":"101","room_type":"Single","price":1,"capacity":1,"status":"closed"}`), "application/json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRooms(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]dto.RoomResponse, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(rooms.status = :status AND rooms.room_type = :room_type)", where)
			assert.Equal(t, "Suite", args["room_type"])

			return []dto.RoomResponse{}, nil
		})

	rec := serve(router, http.MethodGet, "/rooms?status=available&room_type=Suite", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteRoom(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), int64(7)).Return(failure.NotFound("Room"))

	rec := serve(router, http.MethodDelete, "/rooms/7", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Room not found"}`, rec.Body.String())
}

func multipartImage(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(bytes.Repeat([]byte{1}, size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadRoomImage(t *testing.T) {
	t.Run("uploads", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().UploadImage(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req dto.UploadImageRequest) (dto.RoomResponse, error) {
				assert.Equal(t, "image/png", req.Image.Header.Get("Content-Type"))

				url := "https://cdn.example.com/rooms/x.png"

				return dto.RoomResponse{ID: 2, ImageURL: &url}, nil
			})

		body, contentType := multipartImage(t, "image/png", 128)
		rec := serve(router, http.MethodPut, "/rooms/2/image", body, contentType)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects other types", func(t *testing.T) {
		_, router := newRouter(t)

		body, contentType := multipartImage(t, "image/gif", 128)
		rec := serve(router, http.MethodPut, "/rooms/2/image", body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		_, router := newRouter(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("note", "x"))
		require.NoError(t, writer.Close())

		rec := serve(router, http.MethodPut, "/rooms/2/image", body, writer.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing required fields: image"}`, rec.Body.String())
	})
}

func TestLinkAmenity(t *testing.T) {
	t.Run("linked", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().LinkAmenity(gomock.Any(), int64(1), int64(4)).Return(nil)

		rec := serve(router, http.MethodPut, "/rooms/1/amenities/4", nil, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("bad amenity id", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPut, "/rooms/1/amenities/wifi", nil, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Amenity not found"}`, rec.Body.String())
	})

	t.Run("unlink unknown room", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().UnlinkAmenity(gomock.Any(), int64(1), int64(4)).Return(failure.NotFound("Room"))

		rec := serve(router, http.MethodDelete, "/rooms/1/amenities/4", nil, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
