//go:build integration

package service_test

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/helper"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	amenityRepo "hotel/internal/domains/amenity/repository"
	availabilityService "hotel/internal/domains/availability/service"
	guestDto "hotel/internal/domains/guest/model/dto"
	guestRepo "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	"hotel/internal/domains/reservation/model/dto"
	resRepo "hotel/internal/domains/reservation/repository"
	"hotel/internal/domains/reservation/service"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared/failure"
)

type stack struct {
	guests       guestService.Guest
	rooms        roomService.Room
	reservations service.Reservation
	availability availabilityService.Availability
}

func startPostgres(t *testing.T) *config.Config {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=hotel",
			"POSTGRES_PASSWORD=hotel",
			"POSTGRES_DB=hotel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("purge postgres: %v", err)
		}
	})

	_ = resource.Expire(120)

	cfg := &config.Config{}
	pg := &cfg.DB.Postgres
	pg.Write.Host = "localhost"
	pg.Write.Port = resource.GetPort("5432/tcp")
	pg.Write.Username = "hotel"
	pg.Write.Password = "hotel"
	pg.Write.Name = "hotel"
	pg.MaxRetry = 3
	pg.RetryWaitTime = 1
	pg.MigrationTable = "schema_migrations"

	migrations, err := filepath.Abs("../../../../migrations/postgres")
	require.NoError(t, err)

	pg.MigrationPath = "file://" + migrations

	dsn := postgres.DSN(pg.Write.Username, pg.Write.Password, pg.Write.Host, pg.Write.Port, pg.Write.Name, "", "")

	pool.MaxWait = time.Minute
	require.NoError(t, pool.Retry(func() error {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}

		return db.Close()
	}))

	require.NoError(t, helper.Up(cfg))

	return cfg
}

func newStack(t *testing.T, cfg *config.Config) stack {
	t.Helper()

	conn := postgres.New(cfg)
	t.Cleanup(conn.Close)

	ot := mocks.NewOtel()

	guests := guestRepo.New(conn, ot)
	rooms := roomRepo.New(conn, ot)
	reservations := resRepo.New(conn, ot)

	return stack{
		guests: guestService.New(guests, reservations, rooms, conn, ot),
		rooms: roomService.New(
			rooms,
			amenityRepo.New(conn, ot),
			amenityRepo.NewRoomAmenity(conn, ot),
			reservations,
			guests,
			nil,
			conn,
			ot,
		),
		reservations: service.New(reservations, guests, rooms, kafka.NoopPublisher{}, conn, cfg, ot),
		availability: availabilityService.New(rooms, reservations, ot),
	}
}

func TestReservation_Postgres(t *testing.T) {
	cfg := startPostgres(t)
	s := newStack(t, cfg)
	ctx := context.Background()

	guest, err := s.guests.Create(ctx, guestDto.CreateGuestRequest{
		Name:     ptr("Jane Doe"),
		Email:    ptr("jane@example.com"),
		Phone:    ptr("555-0100"),
		IDType:   ptr("passport"),
		IDNumber: ptr("X123"),
	})
	require.NoError(t, err)

	t.Run("duplicate guest email", func(t *testing.T) {
		_, err := s.guests.Create(ctx, guestDto.CreateGuestRequest{
			Name:     ptr("Jane Again"),
			Email:    ptr("jane@example.com"),
			Phone:    ptr("555-0101"),
			IDType:   ptr("passport"),
			IDNumber: ptr("X124"),
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	room, err := s.rooms.Create(ctx, roomDto.CreateRoomRequest{
		RoomNumber: ptr("101"),
		RoomType:   ptr("double"),
		Price:      ptr(120.5),
		Capacity:   ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "available", room.Status)

	reservation, err := s.reservations.Create(ctx, dto.CreateReservationRequest{
		GuestID:      ptr(guest.ID),
		RoomID:       ptr(room.ID),
		CheckInDate:  ptr("2024-06-01"),
		CheckOutDate: ptr("2024-06-03"),
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", reservation.Status)

	t.Run("overlap is rejected when configured", func(t *testing.T) {
		cfg.App.Reservation.RejectOverlap = true
		defer func() { cfg.App.Reservation.RejectOverlap = false }()

		_, err := s.reservations.Create(ctx, dto.CreateReservationRequest{
			GuestID:      ptr(guest.ID),
			RoomID:       ptr(room.ID),
			CheckInDate:  ptr("2024-06-02"),
			CheckOutDate: ptr("2024-06-04"),
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("availability follows reservations", func(t *testing.T) {
		booked, err := s.availability.ForDate(ctx, "2024-06-02")
		require.NoError(t, err)
		require.Len(t, booked, 1)
		assert.False(t, booked[0].Available)

		free, err := s.availability.ForDate(ctx, "2024-06-10")
		require.NoError(t, err)
		require.Len(t, free, 1)
		assert.True(t, free[0].Available)
	})

	t.Run("deleting a room keeps its reservations", func(t *testing.T) {
		require.NoError(t, s.rooms.Delete(ctx, room.ID))

		got, err := s.reservations.Get(ctx, reservation.ID)
		require.NoError(t, err)
		assert.Nil(t, got.RoomID)
	})

	t.Run("deleting a guest removes their reservations", func(t *testing.T) {
		require.NoError(t, s.guests.Delete(ctx, guest.ID))

		_, err := s.reservations.Get(ctx, reservation.ID)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
