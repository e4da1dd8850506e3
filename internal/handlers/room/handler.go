package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
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
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Put("/{id}/image", handler.UploadRoomImage)
		routerGroup.Put("/{id}/amenities/{amenityId}", handler.LinkAmenity)
		routerGroup.Delete("/{id}/amenities/{amenityId}", handler.UnlinkAmenity)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Status defaults to available.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Router /rooms [post]
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid room request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created")

	response.WithJSON(w, http.StatusCreated, room)
}

// GetRooms retrieves all rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve all rooms with their amenities and reservations.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_type query string false "Filter by room type"
// @Success 200 {array} dto.RoomResponse
// @Failure 500 {object} response.Error
// @Router /rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filterGroup := gDto.And()

	if status := r.URL.Query().Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if roomType := r.URL.Query().Get(constant.RequestParamType); roomType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    roomType,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} response.Error
// @Router /rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, ok := roomID(w, r)
	if !ok {
		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Attributes to change"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /rooms/{id} [patch]
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, ok := roomID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := validator.ValidateStrict(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid room update")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated")

	response.WithJSON(w, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID. Its reservations are kept with the
// room cleared.
// @Summary Delete a room by ID
// @Tags Room
// @Param id path int true "Room ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /rooms/{id} [delete]
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, ok := roomID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room deleted")

	response.WithNoContent(w)
}

// UploadRoomImage replaces the photo of a room.
// @Summary Upload a room photo
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Room ID"
// @Param image formData file true "PNG or JPEG, at most 1 MB"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /rooms/{id}/image [put]
func (handler *Handler) UploadRoomImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadRoomImage")
	defer scope.End()

	id, ok := roomID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("Invalid multipart form"))

		return
	}

	var req dto.UploadImageRequest

	if file, header, err := r.FormFile(constant.FormFileImage); err == nil {
		_ = file.Close()
		req.Image = header
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid room image")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.UploadImage(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to upload room image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room image uploaded")

	response.WithJSON(w, http.StatusOK, room)
}

// LinkAmenity attaches an amenity to a room.
// @Summary Link an amenity to a room
// @Tags Room
// @Param id path int true "Room ID"
// @Param amenityId path int true "Amenity ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /rooms/{id}/amenities/{amenityId} [put]
func (handler *Handler) LinkAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LinkAmenity")
	defer scope.End()

	id, amenityID, ok := linkIDs(w, r)
	if !ok {
		return
	}

	if err := handler.service.LinkAmenity(ctx, id, amenityID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Int64("amenity_id", amenityID).Msg("failed to link amenity")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}

// UnlinkAmenity detaches an amenity from a room.
// @Summary Unlink an amenity from a room
// @Tags Room
// @Param id path int true "Room ID"
// @Param amenityId path int true "Amenity ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Router /rooms/{id}/amenities/{amenityId} [delete]
func (handler *Handler) UnlinkAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnlinkAmenity")
	defer scope.End()

	id, amenityID, ok := linkIDs(w, r)
	if !ok {
		return
	}

	if err := handler.service.UnlinkAmenity(ctx, id, amenityID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Int64("amenity_id", amenityID).Msg("failed to unlink amenity")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}

func roomID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, failure.NotFound("Room"))

		return 0, false
	}

	return id, true
}

func linkIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	id, ok := roomID(w, r)
	if !ok {
		return 0, 0, false
	}

	amenityID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamAmenityID))
	if err != nil {
		response.WithError(w, failure.NotFound("Amenity"))

		return 0, 0, false
	}

	return id, amenityID, true
}
