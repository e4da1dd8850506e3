package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	errGuestNotFound = "Guest not found"
	errRoomNotFound  = "Room not found"
	errOverlap       = "Room is already reserved for these dates"
	errUnknownRef    = "Guest or room does not exist"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo      repository.Reservation
	guestRepo guestRepo.Guest
	roomRepo  roomRepo.Room
	publisher kafka.Publisher
	tx        postgres.Transactor
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	guestRepo guestRepo.Guest,
	roomRepo roomRepo.Room,
	publisher kafka.Publisher,
	tx postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		roomRepo:  roomRepo,
		publisher: publisher,
		tx:        tx,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := req.ToModel()
	if err != nil {
		return res, err
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.checkReferences(ctx, tx, reservation); err != nil {
			return err
		}

		if err := s.checkOverlap(ctx, tx, reservation); err != nil {
			return err
		}

		id, err := s.repo.InsertTx(ctx, tx, reservation)
		if err != nil {
			log.Error().Err(err).Msg("failed to insert reservation")

			return fmt.Errorf("failed to insert reservation: %w", err)
		}

		reservation.ID = id

		return nil
	})
	if err != nil {
		return res, mapWriteError(err)
	}

	s.publish(ctx, constant.ReservationEventCreated, reservation)

	return s.render(ctx, reservation)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.SortableFields)

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	guests, rooms, err := s.loadRelations(ctx, reservations)
	if err != nil {
		return nil, err
	}

	return dto.FromModels(reservations, guests, rooms), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, reservation)
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	fields, err := req.ToFields()
	if err != nil {
		return res, err
	}

	if len(fields) == 0 {
		return s.render(ctx, current)
	}

	next := req.Apply(current, fields)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if req.AffectsOccupancy() {
			if err := s.checkOverlap(ctx, tx, next); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to update reservation")

			return fmt.Errorf("failed to update reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, mapWriteError(err)
	}

	s.publish(ctx, constant.ReservationEventUpdated, next)

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, updated)
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("Reservation") //nolint:wrapcheck
	}

	s.publish(ctx, constant.ReservationEventDeleted, reservation)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return reservation, failure.NotFound("Reservation") //nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) checkReferences(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error {
	exist, err := s.guestRepo.ExistTx(ctx, tx, shared.FilterByID(reservation.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation guest")

		return fmt.Errorf("failed to check reservation guest: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString(errGuestNotFound)
	}

	if reservation.RoomID == nil {
		return nil
	}

	exist, err = s.roomRepo.ExistTx(ctx, tx, shared.FilterByID(*reservation.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation room")

		return fmt.Errorf("failed to check reservation room: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString(errRoomNotFound)
	}

	return nil
}

// checkOverlap looks for other active stays in the same room sharing at least
// one night with reservation. Overlaps are only logged unless the
// reservation config asks for them to be rejected.
func (s *serviceImpl) checkOverlap(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error {
	if reservation.RoomID == nil || !reservation.IsActive() {
		return nil
	}

	firstNight := timezone.StartOfDay(reservation.CheckInDate)
	checkOutDay := timezone.StartOfDay(reservation.CheckOutDate)

	if !checkOutDay.After(firstNight) {
		return nil
	}

	filter := gDto.And(
		gDto.Filter{Field: model.FieldRoomID, Value: *reservation.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: constant.ActiveReservationStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckInDate, ArgName: "stay_end", Value: checkOutDay, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckOutDate, ArgName: "stay_start", Value: firstNight.AddDate(0, 0, 1), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldID, ArgName: "self_id", Value: reservation.ID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
	)

	overlapping, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{SortBy: model.FieldID}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check overlapping reservations")

		return fmt.Errorf("failed to check overlapping reservations: %w", err)
	}

	if len(overlapping) == 0 {
		return nil
	}

	ids := make([]int64, len(overlapping))
	for i, other := range overlapping {
		ids[i] = other.ID
	}

	if s.cfg.App.Reservation.RejectOverlap {
		return failure.Conflict(errOverlap)
	}

	log.Warn().
		Int64("room_id", *reservation.RoomID).
		Ints64("overlapping", ids).
		Str("check_in_date", firstNight.Format(constant.DateFormat)).
		Str("check_out_date", checkOutDay.Format(constant.DateFormat)).
		Msg("reservation overlaps an active stay in the same room")

	return nil
}

// publish sends a lifecycle event. Delivery failures never fail the request.
func (s *serviceImpl) publish(ctx context.Context, event string, reservation model.Reservation) {
	msg := kafka.Message{
		Key:   strconv.FormatInt(reservation.ID, 10),
		Value: dto.NewEvent(event, reservation),
	}

	if err := s.publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		log.Error().Err(err).Str("event", event).Int64("id", reservation.ID).Msg("failed to publish reservation event")
	}
}

func (s *serviceImpl) render(ctx context.Context, reservation model.Reservation) (res dto.ReservationResponse, err error) {
	guests, rooms, err := s.loadRelations(ctx, []model.Reservation{reservation})
	if err != nil {
		return res, err
	}

	res.FromModel(reservation, guests, rooms)

	return res, nil
}

func (s *serviceImpl) loadRelations(ctx context.Context, reservations []model.Reservation) (map[int64]guestModel.Guest, map[int64]roomModel.Room, error) {
	guests := map[int64]guestModel.Guest{}
	rooms := map[int64]roomModel.Room{}

	if len(reservations) == 0 {
		return guests, rooms, nil
	}

	guestIDs := make([]int64, 0, len(reservations))
	roomIDs := make([]int64, 0, len(reservations))

	for _, reservation := range reservations {
		guestIDs = append(guestIDs, reservation.GuestID)

		if reservation.RoomID != nil {
			roomIDs = append(roomIDs, *reservation.RoomID)
		}
	}

	guestList, err := s.guestRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(guestIDs, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation guests")

		return nil, nil, fmt.Errorf("failed to get reservation guests: %w", err)
	}

	for _, guest := range guestList {
		guests[guest.ID] = guest
	}

	if len(roomIDs) == 0 {
		return guests, rooms, nil
	}

	roomList, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(roomIDs, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation rooms")

		return nil, nil, fmt.Errorf("failed to get reservation rooms: %w", err)
	}

	for _, room := range roomList {
		rooms[room.ID] = room
	}

	return guests, rooms, nil
}

func mapWriteError(err error) error {
	if failure.IsFailure(err) {
		return err
	}

	if shared.IsForeignKeyViolation(err) {
		return failure.BadRequestFromString(errUnknownRef) //nolint:wrapcheck
	}

	return failure.BadRequest(err) //nolint:wrapcheck
}
