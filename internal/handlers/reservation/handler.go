package reservation

import (
	"hotel/infras/otel"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/service"
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
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// GetReservations lists reservations with their guest and room.
// @Summary List reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_id query int false "Filter by room"
// @Param guest_id query int false "Filter by guest"
// @Success 200 {array} dto.ReservationResponse
// @Failure 500 {object} response.Error
// @Router /reservations [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()
	filterGroup := gDto.And()

	if status := query.Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if roomID := shared.ConvertStringToInt64(query.Get(constant.RequestParamRoomID)); roomID != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    *roomID,
			Table:    model.TableName,
		})
	}

	if guestID := shared.ConvertStringToInt64(query.Get(constant.RequestParamGuestID)); guestID != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestID,
			Operator: gDto.FilterOperatorEq,
			Value:    *guestID,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// CreateReservation books a room for a guest.
// @Summary Create a reservation
// @Description Status defaults to confirmed. Overlapping stays are logged, or rejected with 409 when configured.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /reservations [post]
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var req dto.CreateReservationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid reservation request")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created")

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservationByID returns one reservation.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} response.Error
// @Router /reservations/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, ok := reservationID(w, r)
	if !ok {
		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation overwrites the supplied reservation attributes.
// @Summary Update a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Attributes to change"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /reservations/{id} [patch]
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id, ok := reservationID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateReservationRequest
	if err := validator.ValidateStrict(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid reservation update")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated")

	response.WithJSON(w, http.StatusOK, reservation)
}

// DeleteReservation removes a reservation.
// @Summary Delete a reservation
// @Tags Reservation
// @Param id path int true "Reservation ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /reservations/{id} [delete]
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id, ok := reservationID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation deleted")

	response.WithNoContent(w)
}

func reservationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Reservation"))

		return 0, false
	}

	return id, true
}
