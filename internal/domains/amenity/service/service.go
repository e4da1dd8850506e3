package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Amenity interface {
	Create(ctx context.Context, req dto.CreateAmenityRequest) (dto.AmenityResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.AmenityResponse, error)
	Get(ctx context.Context, id int64) (dto.AmenityResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateAmenityRequest) (dto.AmenityResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo repository.Amenity
	otel otel.Otel
}

func New(repo repository.Amenity, otel otel.Otel) Amenity {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAmenityRequest) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	amenity := req.ToModel()

	amenity.ID, err = s.repo.Insert(ctx, amenity)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert amenity")

		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	res.FromModel(amenity)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.SortableFields)

	amenities, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return nil, fmt.Errorf("failed to get amenities: %w", err)
	}

	return dto.FromModels(amenities), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	amenity, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(amenity)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateAmenityRequest) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	amenity, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req)
	if len(fields) > 0 {
		if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to update amenity")

			return res, failure.BadRequest(err) //nolint:wrapcheck
		}

		if amenity, err = s.get(ctx, id); err != nil {
			return res, err
		}
	}

	res.FromModel(amenity)

	return res, nil
}

// Delete also drops the amenity from every room through the link table's
// foreign key.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".amenity.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete amenity")

		return fmt.Errorf("failed to delete amenity: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("Amenity") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Amenity, error) {
	amenity, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get amenity")

		return amenity, fmt.Errorf("failed to get amenity: %w", err)
	}

	if amenity.ID == 0 {
		return amenity, failure.NotFound("Amenity") //nolint:wrapcheck
	}

	return amenity, nil
}
