package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/s3"
	amenityModel "hotel/internal/domains/amenity/model"
	amenityRepo "hotel/internal/domains/amenity/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	resModel "hotel/internal/domains/reservation/model"
	resRepo "hotel/internal/domains/reservation/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const errRoomNumberExists = "Room number already exists"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
	LinkAmenity(ctx context.Context, roomID, amenityID int64) error
	UnlinkAmenity(ctx context.Context, roomID, amenityID int64) error
	UploadImage(ctx context.Context, id int64, req dto.UploadImageRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo            repository.Room
	amenityRepo     amenityRepo.Amenity
	roomAmenityRepo amenityRepo.RoomAmenity
	reservationRepo resRepo.Reservation
	guestRepo       guestRepo.Guest
	storage         s3.Storage
	tx              postgres.Transactor
	otel            otel.Otel
}

func New(
	repo repository.Room,
	amenities amenityRepo.Amenity,
	roomAmenities amenityRepo.RoomAmenity,
	reservations resRepo.Reservation,
	guests guestRepo.Guest,
	storage s3.Storage,
	tx postgres.Transactor,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:            repo,
		amenityRepo:     amenities,
		roomAmenityRepo: roomAmenities,
		reservationRepo: reservations,
		guestRepo:       guests,
		storage:         storage,
		tx:              tx,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel()

	room.ID, err = s.repo.Insert(ctx, room)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert room")

		if shared.IsUniqueViolation(err, model.ConstraintRoomNumberUnique) {
			return res, failure.BadRequestFromString(errRoomNumberExists) //nolint:wrapcheck
		}

		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	res.FromModel(room, nil, nil, nil)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.SortableFields)

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	rel, err := s.loadRelations(ctx, rooms)
	if err != nil {
		return nil, err
	}

	return dto.FromModels(rooms, rel), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, room)
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req)
	if len(fields) == 0 {
		return s.render(ctx, room)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		if shared.IsUniqueViolation(err, model.ConstraintRoomNumberUnique) {
			return res, failure.BadRequestFromString(errRoomNumberExists) //nolint:wrapcheck
		}

		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	room, err = s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.render(ctx, room)
}

// Delete removes the room and its amenity links. Reservations of the room are
// kept with their room cleared.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if room.ImageURL != nil {
		if err := s.storage.DeleteByURL(ctx, *room.ImageURL); err != nil {
			log.Warn().Err(err).Int64("id", id).Msg("failed to delete room image")
		}
	}

	return nil
}

func (s *serviceImpl) LinkAmenity(ctx context.Context, roomID, amenityID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.LinkAmenity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.checkLinkTargets(ctx, tx, roomID, amenityID); err != nil {
			return err
		}

		link := amenityModel.RoomAmenity{RoomID: roomID, AmenityID: amenityID}

		linked, err := s.roomAmenityRepo.ExistTx(ctx, tx, linkFilter(link))
		if err != nil {
			log.Error().Err(err).Msg("failed to check room amenity")

			return fmt.Errorf("failed to check room amenity: %w", err)
		}

		if linked {
			return nil
		}

		if _, err = s.roomAmenityRepo.InsertTx(ctx, tx, link); err != nil {
			log.Error().Err(err).Msg("failed to link amenity")

			return fmt.Errorf("failed to link amenity: %w", err)
		}

		return nil
	})
}

func (s *serviceImpl) UnlinkAmenity(ctx context.Context, roomID, amenityID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UnlinkAmenity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.checkLinkTargets(ctx, tx, roomID, amenityID)
	})
	if err != nil {
		return err
	}

	if _, err = s.roomAmenityRepo.Delete(ctx, linkFilter(amenityModel.RoomAmenity{RoomID: roomID, AmenityID: amenityID})); err != nil {
		log.Error().Err(err).Msg("failed to unlink amenity")

		return fmt.Errorf("failed to unlink amenity: %w", err)
	}

	return nil
}

// UploadImage stores the photo and points the room at it. The previous photo
// is removed once the room no longer references it.
func (s *serviceImpl) UploadImage(ctx context.Context, id int64, req dto.UploadImageRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	file, err := req.Image.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded image")

		return res, failure.BadRequest(fmt.Errorf("failed to open image: %w", err)) //nolint:wrapcheck
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded image")

		return res, failure.BadRequest(fmt.Errorf("failed to read image: %w", err)) //nolint:wrapcheck
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(req.Image.Filename))
	contentType := req.Image.Header.Get(constant.RequestHeaderContentType)

	url, err := s.storage.Upload(ctx, constant.RoomImageDir, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	err = s.repo.Update(ctx, map[string]any{model.FieldImageURL: url}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to save room image")

		if delErr := s.storage.DeleteByURL(ctx, url); delErr != nil {
			log.Warn().Err(delErr).Str("url", url).Msg("failed to remove orphaned room image")
		}

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	if room.ImageURL != nil && *room.ImageURL != url {
		if delErr := s.storage.DeleteByURL(ctx, *room.ImageURL); delErr != nil {
			log.Warn().Err(delErr).Int64("id", id).Msg("failed to delete previous room image")
		}
	}

	room.ImageURL = &url

	return s.render(ctx, room)
}

func (s *serviceImpl) checkLinkTargets(ctx context.Context, tx *sqlx.Tx, roomID, amenityID int64) error {
	exist, err := s.repo.ExistTx(ctx, tx, shared.FilterByID(roomID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}

	if !exist {
		return failure.NotFound("Room") //nolint:wrapcheck
	}

	exist, err = s.amenityRepo.ExistTx(ctx, tx, shared.FilterByID(amenityID, amenityModel.FieldID, amenityModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check amenity: %w", err)
	}

	if !exist {
		return failure.NotFound("Amenity") //nolint:wrapcheck
	}

	return nil
}

func linkFilter(link amenityModel.RoomAmenity) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: amenityModel.FieldRoomID, Value: link.RoomID, Operator: gDto.FilterOperatorEq, Table: amenityModel.RoomAmenityTableName},
		gDto.Filter{Field: amenityModel.FieldAmenityID, Value: link.AmenityID, Operator: gDto.FilterOperatorEq, Table: amenityModel.RoomAmenityTableName},
	)
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("Room") //nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) render(ctx context.Context, room model.Room) (res dto.RoomResponse, err error) {
	rel, err := s.loadRelations(ctx, []model.Room{room})
	if err != nil {
		return res, err
	}

	return dto.FromModels([]model.Room{room}, rel)[0], nil
}

// loadRelations fetches amenities, reservations and reservation guests for a
// batch of rooms with one query per relation.
func (s *serviceImpl) loadRelations(ctx context.Context, rooms []model.Room) (rel dto.Relations, err error) {
	if len(rooms) == 0 {
		return rel, nil
	}

	roomIDs := make([]int64, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	rel.Amenities, err = s.roomAmenityRepo.GetAll(ctx, gDto.QueryParams{SortBy: amenityModel.FieldAmenityID},
		shared.FilterByIDs(roomIDs, amenityModel.FieldRoomID, amenityModel.RoomAmenityTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room amenities")

		return rel, fmt.Errorf("failed to get room amenities: %w", err)
	}

	rel.Reservations, err = s.reservationRepo.GetAll(ctx, gDto.QueryParams{SortBy: resModel.FieldID},
		shared.FilterByIDs(roomIDs, resModel.FieldRoomID, resModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room reservations")

		return rel, fmt.Errorf("failed to get room reservations: %w", err)
	}

	rel.Guests = map[int64]guestModel.Guest{}
	if len(rel.Reservations) == 0 {
		return rel, nil
	}

	guestIDs := make([]int64, len(rel.Reservations))
	for i, reservation := range rel.Reservations {
		guestIDs[i] = reservation.GuestID
	}

	guests, err := s.guestRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(guestIDs, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation guests")

		return rel, fmt.Errorf("failed to get reservation guests: %w", err)
	}

	for _, guest := range guests {
		rel.Guests[guest.ID] = guest
	}

	return rel, nil
}
