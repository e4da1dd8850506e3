package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	amenityMocks "hotel/internal/domains/amenity/mocks"
	amenityModel "hotel/internal/domains/amenity/model"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	resMocks "hotel/internal/domains/reservation/mocks"
	resModel "hotel/internal/domains/reservation/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func runTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	repo          *roomMocks.MockRoom
	amenities     *amenityMocks.MockAmenity
	roomAmenities *amenityMocks.MockRoomAmenity
	reservations  *resMocks.MockReservation
	guests        *guestMocks.MockGuest
	storage       *s3Mocks.MockStorage
	tx            *pgMocks.MockTransactor
	svc           service.Room
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:          roomMocks.NewMockRoom(ctrl),
		amenities:     amenityMocks.NewMockAmenity(ctrl),
		roomAmenities: amenityMocks.NewMockRoomAmenity(ctrl),
		reservations:  resMocks.NewMockReservation(ctrl),
		guests:        guestMocks.NewMockGuest(ctrl),
		storage:       s3Mocks.NewMockStorage(ctrl),
		tx:            pgMocks.NewMockTransactor(ctrl),
	}
	f.svc = service.New(f.repo, f.amenities, f.roomAmenities, f.reservations, f.guests, f.storage, f.tx, mocks.NewOtel())

	return f
}

func (f fixture) expectNoRelations() {
	f.roomAmenities.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]amenityModel.RoomAmenity{}, nil)
	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Reservation{}, nil)
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomNumber: ptr("101"),
		RoomType:   ptr("Deluxe"),
		Price:      ptr(120.5),
		Capacity:   ptr(2),
	}

	t.Run("defaults status to available", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) (int64, error) {
				assert.Equal(t, "available", room.Status)

				return 4, nil
			})

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.ID)
		assert.Equal(t, "available", res.Status)
		assert.NotNil(t, res.Amenities)
		assert.NotNil(t, res.Reservations)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(int64(0), &pq.Error{Code: "23505", Constraint: model.ConstraintRoomNumberUnique})

		_, err := f.svc.Create(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "Room number already exists")
	})
}

func TestRoomService_Get(t *testing.T) {
	f := setup(t)

	checkIn := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 3, RoomNumber: "301", Status: "available"}, nil)
	f.roomAmenities.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]amenityModel.RoomAmenity{
		{RoomID: 3, AmenityID: 1, Name: "WiFi"},
	}, nil)
	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Reservation{
		{ID: 9, GuestID: 2, RoomID: ptr(int64(3)), CheckInDate: checkIn, CheckOutDate: checkIn.AddDate(0, 0, 3), Status: "confirmed"},
	}, nil)
	f.guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]guestModel.Guest{{ID: 2, Name: "Ann"}}, nil)

	res, err := f.svc.Get(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, res.Amenities, 1)
	assert.Equal(t, "WiFi", res.Amenities[0].Name)
	require.Len(t, res.Reservations, 1)
	require.NotNil(t, res.Reservations[0].Guest)
	assert.Equal(t, "Ann", res.Reservations[0].Guest.Name)
	assert.Equal(t, "2025-01-04T00:00:00", res.Reservations[0].CheckOutDate)
}

func TestRoomService_Update(t *testing.T) {
	t.Run("sets status", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 1, Status: "available"}, nil),
			f.repo.EXPECT().Update(gomock.Any(), map[string]any{"status": "maintenance"}, gomock.Any()).Return(nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 1, Status: "maintenance"}, nil),
		)
		f.expectNoRelations()

		res, err := f.svc.Update(context.Background(), 1, dto.UpdateRoomRequest{Status: ptr("maintenance")})
		require.NoError(t, err)
		assert.Equal(t, "maintenance", res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(context.Background(), 1, dto.UpdateRoomRequest{Status: ptr("maintenance")})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "Room not found")
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("removes image after the row", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 1, ImageURL: ptr("https://cdn.example.com/rooms/a.png")}, nil),
			f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil),
			f.storage.EXPECT().DeleteByURL(gomock.Any(), "https://cdn.example.com/rooms/a.png").Return(errors.New("s3 down")),
		)

		assert.NoError(t, f.svc.Delete(context.Background(), 1))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), 1)))
	})
}

func TestRoomService_LinkAmenity(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "links",
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.amenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomAmenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.roomAmenities.EXPECT().InsertTx(gomock.Any(), gomock.Any(), amenityModel.RoomAmenity{RoomID: 1, AmenityID: 2}).Return(int64(0), nil)
			},
		},
		{
			name: "already linked is a no-op",
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.amenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomAmenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "unknown room",
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown amenity",
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.amenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
			tt.setupMock(f)

			err := f.svc.LinkAmenity(context.Background(), 1, 2)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestRoomService_UnlinkAmenity(t *testing.T) {
	f := setup(t)

	f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.amenities.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.roomAmenities.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(room_amenities.room_id = :room_id AND room_amenities.amenity_id = :amenity_id)", where)

			return 1, nil
		})

	assert.NoError(t, f.svc.UnlinkAmenity(context.Background(), 1, 2))
}

func imageHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="` + name + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/rooms/1/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, header, err := req.FormFile("image")
	require.NoError(t, err)

	return header
}

func TestRoomService_UploadImage(t *testing.T) {
	const (
		oldURL = "https://cdn.example.com/rooms/old.png"
		newURL = "https://cdn.example.com/rooms/new.png"
	)

	t.Run("replaces previous image", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 1, ImageURL: ptr(oldURL)}, nil)
		f.storage.EXPECT().Upload(gomock.Any(), "rooms", gomock.Any(), "image/png", []byte("png-bytes")).
			DoAndReturn(func(_ context.Context, _, fileName, _ string, _ []byte) (string, error) {
				assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, fileName)

				return newURL, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), map[string]any{"image_url": newURL}, gomock.Any()).Return(nil)
		f.storage.EXPECT().DeleteByURL(gomock.Any(), oldURL).Return(nil)
		f.expectNoRelations()

		res, err := f.svc.UploadImage(context.Background(), 1, dto.UploadImageRequest{
			Image: imageHeader(t, "Photo.PNG", "image/png", []byte("png-bytes")),
		})
		require.NoError(t, err)
		require.NotNil(t, res.ImageURL)
		assert.Equal(t, newURL, *res.ImageURL)
	})

	t.Run("removes upload when the row cannot be updated", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 1}, nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(newURL, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.storage.EXPECT().DeleteByURL(gomock.Any(), newURL).Return(nil)

		_, err := f.svc.UploadImage(context.Background(), 1, dto.UploadImageRequest{
			Image: imageHeader(t, "a.jpg", "image/jpeg", []byte("jpg")),
		})
		assert.Error(t, err)
	})
}
