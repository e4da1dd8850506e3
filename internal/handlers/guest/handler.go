package guest

import (
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
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
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Patch("/{id}", handler.UpdateGuest)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
	})
}

// GetGuests lists guests with their reservations.
// @Summary List guests
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param email query string false "Filter by email"
// @Success 200 {array} dto.GuestResponse
// @Failure 500 {object} response.Error
// @Router /guests [get]
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
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

	if email := r.URL.Query().Get(model.FieldEmail); email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	guests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// CreateGuest registers a guest.
// @Summary Create a guest
// @Description Email must be unused.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Guest"
// @Success 201 {object} dto.GuestResponse
// @Failure 400 {object} response.Error
// @Router /guests [post]
func (handler *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	var req dto.CreateGuestRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid guest request")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest created")

	response.WithJSON(w, http.StatusCreated, guest)
}

// GetGuestByID returns one guest.
// @Summary Get a guest
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {object} dto.GuestResponse
// @Failure 404 {object} response.Error
// @Router /guests/{id} [get]
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Guest"))

		return
	}

	guest, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get guest")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// UpdateGuest overwrites the supplied guest attributes.
// @Summary Update a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path int true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Attributes to change"
// @Success 200 {object} dto.GuestResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /guests/{id} [patch]
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Guest"))

		return
	}

	var req dto.UpdateGuestRequest
	if err := validator.ValidateStrict(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid guest update")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest updated")

	response.WithJSON(w, http.StatusOK, guest)
}

// DeleteGuest removes a guest and their reservations.
// @Summary Delete a guest
// @Tags Guest
// @Param id path int true "Guest ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /guests/{id} [delete]
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Guest"))

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest deleted")

	response.WithNoContent(w)
}
