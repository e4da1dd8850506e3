package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	resModel "hotel/internal/domains/reservation/model"
	resRepo "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const errEmailExists = "Email already exists"

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.GuestResponse, error)
	Get(ctx context.Context, id int64) (dto.GuestResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (dto.GuestResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo            repository.Guest
	reservationRepo resRepo.Reservation
	roomRepo        roomRepo.Room
	tx              postgres.Transactor
	otel            otel.Otel
}

func New(repo repository.Guest, reservationRepo resRepo.Reservation, roomRepo roomRepo.Room, tx postgres.Transactor, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		tx:              tx,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest := req.ToModel()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, shared.FilterByField(model.FieldEmail, guest.Email, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check guest email")

			return fmt.Errorf("failed to check guest email: %w", err)
		}

		if exist {
			return failure.BadRequestFromString(errEmailExists)
		}

		guest.ID, err = s.repo.InsertTx(ctx, tx, guest)
		if err != nil {
			log.Error().Err(err).Msg("failed to insert guest")

			return fmt.Errorf("failed to insert guest: %w", err)
		}

		return nil
	})
	if err != nil {
		if shared.IsUniqueViolation(err, model.ConstraintEmailUnique) {
			return res, failure.BadRequestFromString(errEmailExists) //nolint:wrapcheck
		}

		if failure.IsFailure(err) {
			return res, err
		}

		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	res.FromModel(guest, nil, nil)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.SortableFields)

	guests, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return nil, fmt.Errorf("failed to get guests: %w", err)
	}

	reservations, rooms, err := s.loadRelations(ctx, guests)
	if err != nil {
		return nil, err
	}

	return dto.FromModels(guests, reservations, rooms), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, guest)
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req)
	if len(fields) == 0 {
		return s.render(ctx, guest)
	}

	fields[model.FieldUpdatedAt] = timezone.Now()

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update guest")

		if shared.IsUniqueViolation(err, model.ConstraintEmailUnique) {
			return res, failure.BadRequestFromString(errEmailExists) //nolint:wrapcheck
		}

		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	guest, err = s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, guest)
}

// Delete removes the guest. Its reservations go with it through the
// guest_id foreign key.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("Guest") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Guest, error) {
	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get guest")

		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == 0 {
		return guest, failure.NotFound("Guest") //nolint:wrapcheck
	}

	return guest, nil
}

func (s *serviceImpl) render(ctx context.Context, guest model.Guest) (res dto.GuestResponse, err error) {
	reservations, rooms, err := s.loadRelations(ctx, []model.Guest{guest})
	if err != nil {
		return res, err
	}

	res.FromModel(guest, reservations, rooms)

	return res, nil
}

// loadRelations fetches the reservations of guests and the rooms they point
// to, one query each.
func (s *serviceImpl) loadRelations(ctx context.Context, guests []model.Guest) ([]resModel.Reservation, map[int64]roomModel.Room, error) {
	if len(guests) == 0 {
		return nil, nil, nil
	}

	guestIDs := make([]int64, len(guests))
	for i, guest := range guests {
		guestIDs[i] = guest.ID
	}

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{SortBy: resModel.FieldID},
		shared.FilterByIDs(guestIDs, resModel.FieldGuestID, resModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest reservations")

		return nil, nil, fmt.Errorf("failed to get guest reservations: %w", err)
	}

	roomIDs := make([]int64, 0, len(reservations))
	for _, reservation := range reservations {
		if reservation.RoomID != nil {
			roomIDs = append(roomIDs, *reservation.RoomID)
		}
	}

	rooms := map[int64]roomModel.Room{}
	if len(roomIDs) == 0 {
		return reservations, rooms, nil
	}

	roomList, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(roomIDs, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation rooms")

		return nil, nil, fmt.Errorf("failed to get reservation rooms: %w", err)
	}

	for _, room := range roomList {
		rooms[room.ID] = room
	}

	return reservations, rooms, nil
}
