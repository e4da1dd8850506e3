package availability

import (
	"hotel/infras/otel"
	"hotel/internal/domains/availability/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the static availability path. chi prefers it over the
// /rooms/{id} pattern mounted by the room handler.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/rooms/availability", handler.GetAvailability)
}

// GetAvailability reports, for every room, whether it is free on a day.
// @Summary Room availability for a day
// @Description A room is unavailable when it is under maintenance or an active reservation covers the night.
// @Tags Room
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {array} dto.RoomAvailability
// @Failure 400 {object} response.Error
// @Router /rooms/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	rooms, err := handler.service.ForDate(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}
