package amenity

import (
	"hotel/infras/otel"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Amenity
	otel    otel.Otel
}

func New(service service.Amenity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/amenities", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAmenities)
		routerGroup.Post("/", handler.CreateAmenity)
		routerGroup.Get("/{id}", handler.GetAmenityByID)
		routerGroup.Patch("/{id}", handler.UpdateAmenity)
		routerGroup.Delete("/{id}", handler.DeleteAmenity)
	})
}

// GetAmenities lists amenities.
// @Summary List amenities
// @Tags Amenity
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {array} dto.AmenityResponse
// @Router /amenities [get]
func (handler *Handler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filterGroup := gDto.And(
		gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    r.URL.Query().Get(model.FieldName),
			Table:    model.TableName,
		},
	)

	amenities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, amenities)
}

// CreateAmenity adds an amenity to the catalogue.
// @Summary Create an amenity
// @Tags Amenity
// @Accept json
// @Produce json
// @Param request body dto.CreateAmenityRequest true "Amenity"
// @Success 201 {object} dto.AmenityResponse
// @Failure 400 {object} response.Error
// @Router /amenities [post]
func (handler *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAmenity")
	defer scope.End()

	var req dto.CreateAmenityRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid amenity request")

		response.WithError(w, err)

		return
	}

	amenity, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create amenity")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, amenity)
}

// @Summary Get an amenity
// @Tags Amenity
// @Produce json
// @Param id path int true "Amenity ID"
// @Success 200 {object} dto.AmenityResponse
// @Failure 404 {object} response.Error
// @Router /amenities/{id} [get]
func (handler *Handler) GetAmenityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenityByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Amenity"))

		return
	}

	amenity, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get amenity")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, amenity)
}

// @Summary Update an amenity
// @Tags Amenity
// @Accept json
// @Produce json
// @Param id path int true "Amenity ID"
// @Param request body dto.UpdateAmenityRequest true "Attributes to change"
// @Success 200 {object} dto.AmenityResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /amenities/{id} [patch]
func (handler *Handler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAmenity")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Amenity"))

		return
	}

	var req dto.UpdateAmenityRequest
	if err := validator.ValidateStrict(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid amenity update")

		response.WithError(w, err)

		return
	}

	amenity, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update amenity")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, amenity)
}

// @Summary Delete an amenity
// @Tags Amenity
// @Param id path int true "Amenity ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /amenities/{id} [delete]
func (handler *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAmenity")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Amenity"))

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete amenity")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}
