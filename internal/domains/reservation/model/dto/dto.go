package dto

import (
	"fmt"
	guestModel "hotel/internal/domains/guest/model"
	"hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"
)

type CreateReservationRequest struct {
	GuestID         *int64  `json:"guest_id"         validate:"required,gt=0"`
	RoomID          *int64  `json:"room_id"          validate:"required,gt=0"`
	CheckInDate     *string `json:"check_in_date"    validate:"required,isodate"`
	CheckOutDate    *string `json:"check_out_date"   validate:"required,isodate"`
	Status          *string `json:"status"           validate:"omitempty,oneof=confirmed checked-in checked-out cancelled"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
}

// ToModel parses the ISO-8601 stay dates. A date that does not parse is a 400.
func (c *CreateReservationRequest) ToModel() (model.Reservation, error) {
	checkIn, err := parseDate(model.FieldCheckInDate, *c.CheckInDate)
	if err != nil {
		return model.Reservation{}, err
	}

	checkOut, err := parseDate(model.FieldCheckOutDate, *c.CheckOutDate)
	if err != nil {
		return model.Reservation{}, err
	}

	status := constant.ReservationStatusConfirmed
	if c.Status != nil {
		status = *c.Status
	}

	return model.Reservation{
		GuestID:         *c.GuestID,
		RoomID:          c.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Status:          status,
		SpecialRequests: c.SpecialRequests,
	}, nil
}

// UpdateReservationRequest lists the columns a client may overwrite. The two
// dates are parsed before assignment, see ToFields.
type UpdateReservationRequest struct {
	GuestID         *int64  `db:"guest_id"         json:"guest_id"         validate:"omitempty,gt=0"`
	RoomID          *int64  `db:"room_id"          json:"room_id"          validate:"omitempty,gt=0"`
	CheckInDate     *string `db:"-"                json:"check_in_date"    validate:"omitempty,isodate"`
	CheckOutDate    *string `db:"-"                json:"check_out_date"   validate:"omitempty,isodate"`
	Status          *string `db:"status"           json:"status"           validate:"omitempty,oneof=confirmed checked-in checked-out cancelled"`
	SpecialRequests *string `db:"special_requests" json:"special_requests" validate:"omitempty,max=500"`
}

// ToFields returns the column values to overwrite.
func (u *UpdateReservationRequest) ToFields() (map[string]any, error) {
	fields := shared.TransformFields(u)

	if u.CheckInDate != nil {
		checkIn, err := parseDate(model.FieldCheckInDate, *u.CheckInDate)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCheckInDate] = checkIn
	}

	if u.CheckOutDate != nil {
		checkOut, err := parseDate(model.FieldCheckOutDate, *u.CheckOutDate)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCheckOutDate] = checkOut
	}

	return fields, nil
}

// Apply returns current with the requested changes, used to re-check the stay
// before the update is written.
func (u *UpdateReservationRequest) Apply(current model.Reservation, fields map[string]any) model.Reservation {
	next := current

	if u.GuestID != nil {
		next.GuestID = *u.GuestID
	}

	if u.RoomID != nil {
		next.RoomID = u.RoomID
	}

	if checkIn, ok := fields[model.FieldCheckInDate].(time.Time); ok {
		next.CheckInDate = checkIn
	}

	if checkOut, ok := fields[model.FieldCheckOutDate].(time.Time); ok {
		next.CheckOutDate = checkOut
	}

	if u.Status != nil {
		next.Status = *u.Status
	}

	if u.SpecialRequests != nil {
		next.SpecialRequests = u.SpecialRequests
	}

	return next
}

// AffectsOccupancy reports whether the update can change which room is held
// on which nights.
func (u *UpdateReservationRequest) AffectsOccupancy() bool {
	return u.RoomID != nil || u.CheckInDate != nil || u.CheckOutDate != nil || u.Status != nil
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := timezone.ParseISO(value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("%s must be an ISO-8601 date", field))
	}

	return parsed, nil
}

type GuestResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  *string `json:"address"`
	IDType   string  `json:"id_type"`
	IDNumber string  `json:"id_number"`
}

type RoomResponse struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Price      float64 `json:"price"`
	Capacity   int     `json:"capacity"`
	Status     string  `json:"status"`
	ImageURL   *string `json:"image_url"`
}

type ReservationResponse struct {
	ID              int64          `json:"id"`
	GuestID         int64          `json:"guest_id"`
	RoomID          *int64         `json:"room_id"`
	CheckInDate     string         `json:"check_in_date"`
	CheckOutDate    string         `json:"check_out_date"`
	Status          string         `json:"status"`
	SpecialRequests *string        `json:"special_requests"`
	Guest           *GuestResponse `json:"guest"`
	Room            *RoomResponse  `json:"room"`
}

func (r *ReservationResponse) FromModel(res model.Reservation, guests map[int64]guestModel.Guest, rooms map[int64]roomModel.Room) {
	r.ID = res.ID
	r.GuestID = res.GuestID
	r.RoomID = res.RoomID
	r.CheckInDate = res.CheckInDate.Format(constant.ISODateTimeFormat)
	r.CheckOutDate = res.CheckOutDate.Format(constant.ISODateTimeFormat)
	r.Status = res.Status
	r.SpecialRequests = res.SpecialRequests

	if guest, ok := guests[res.GuestID]; ok {
		r.Guest = &GuestResponse{
			ID:       guest.ID,
			Name:     guest.Name,
			Email:    guest.Email,
			Phone:    guest.Phone,
			Address:  guest.Address,
			IDType:   guest.IDType,
			IDNumber: guest.IDNumber,
		}
	}

	if res.RoomID == nil {
		return
	}

	if room, ok := rooms[*res.RoomID]; ok {
		r.Room = &RoomResponse{
			ID:         room.ID,
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Price:      room.Price,
			Capacity:   room.Capacity,
			Status:     room.Status,
			ImageURL:   room.ImageURL,
		}
	}
}

func FromModels(reservations []model.Reservation, guests map[int64]guestModel.Guest, rooms map[int64]roomModel.Room) []ReservationResponse {
	res := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		res[i].FromModel(reservation, guests, rooms)
	}

	return res
}

// Event is the payload published for every reservation change.
type Event struct {
	Event         string  `json:"event"`
	ReservationID int64   `json:"reservation_id"`
	GuestID       int64   `json:"guest_id"`
	RoomID        *int64  `json:"room_id"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Status        string  `json:"status"`
	OccurredAt    string  `json:"occurred_at"`
	Requests      *string `json:"special_requests,omitempty"`
}

func NewEvent(name string, res model.Reservation) Event {
	return Event{
		Event:         name,
		ReservationID: res.ID,
		GuestID:       res.GuestID,
		RoomID:        res.RoomID,
		CheckInDate:   res.CheckInDate.Format(constant.ISODateTimeFormat),
		CheckOutDate:  res.CheckOutDate.Format(constant.ISODateTimeFormat),
		Status:        res.Status,
		OccurredAt:    timezone.Now().Format(constant.DateTimeFormat),
		Requests:      res.SpecialRequests,
	}
}
