package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model/dto"
	resModel "hotel/internal/domains/reservation/model"
	resRepo "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const errInvalidDate = "Invalid date format. Use YYYY-MM-DD"

type Availability interface {
	// ForDate reports every room for the given YYYY-MM-DD day, today when
	// date is empty.
	ForDate(ctx context.Context, date string) ([]dto.RoomAvailability, error)
}

type serviceImpl struct {
	roomRepo        roomRepo.Room
	reservationRepo resRepo.Reservation
	otel            otel.Otel
}

func New(roomRepo roomRepo.Room, reservationRepo resRepo.Reservation, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		otel:            otel,
	}
}

func (s *serviceImpl) ForDate(ctx context.Context, date string) (res []dto.RoomAvailability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.ForDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day := timezone.Today()

	if date != "" {
		day, err = timezone.ParseDate(date)
		if err != nil {
			return nil, failure.BadRequestFromString(errInvalidDate) //nolint:wrapcheck
		}
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldID}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	nextDay := day.AddDate(0, 0, 1)

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{SortBy: resModel.FieldID}, gDto.And(
		gDto.Filter{Field: resModel.FieldStatus, Value: constant.ActiveReservationStatuses, Operator: gDto.FilterOperatorIn, Table: resModel.TableName},
		gDto.Filter{Field: resModel.FieldRoomID, Operator: gDto.FilterIsNotNull, Table: resModel.TableName},
		gDto.Filter{Field: resModel.FieldCheckInDate, Value: nextDay, Operator: gDto.FilterOperatorLess, Table: resModel.TableName},
		gDto.Filter{Field: resModel.FieldCheckOutDate, Value: nextDay, Operator: gDto.FilterOperatorGreaterEq, Table: resModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Str("date", day.Format(constant.DateFormat)).Msg("failed to get reservations for availability")

		return nil, fmt.Errorf("failed to get reservations for availability: %w", err)
	}

	return Compute(rooms, reservations, day), nil
}

// Compute returns one entry per room, in room order. A room is unavailable
// when it is not in service or an active reservation covers day.
func Compute(rooms []roomModel.Room, reservations []resModel.Reservation, day time.Time) []dto.RoomAvailability {
	occupied := make(map[int64]bool, len(reservations))

	for _, reservation := range reservations {
		if reservation.RoomID == nil || !reservation.IsActive() {
			continue
		}

		if reservation.Covers(day) {
			occupied[*reservation.RoomID] = true
		}
	}

	res := make([]dto.RoomAvailability, len(rooms))
	for i, room := range rooms {
		res[i] = dto.RoomAvailability{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Available:  !room.IsBlocked() && !occupied[room.ID],
			Status:     room.Status,
		}
	}

	return res
}
