package dto

import (
	"hotel/internal/domains/guest/model"
	resModel "hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

type CreateGuestRequest struct {
	Name     *string `json:"name"     validate:"required,max=100"`
	Email    *string `json:"email"    validate:"required,max=100"`
	Phone    *string `json:"phone"    validate:"required,max=20"`
	Address  *string `json:"address"  validate:"omitempty,max=200"`
	IDType   *string `json:"idType"   validate:"required,max=50"`
	IDNumber *string `json:"idNumber" validate:"required,max=50"`
}

func (c *CreateGuestRequest) ToModel() model.Guest {
	now := timezone.Now()

	return model.Guest{
		Name:      *c.Name,
		Email:     *c.Email,
		Phone:     *c.Phone,
		Address:   c.Address,
		IDType:    *c.IDType,
		IDNumber:  *c.IDNumber,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateGuestRequest lists the columns a client may overwrite. Keys use the
// same names as the guest representation.
type UpdateGuestRequest struct {
	Name     *string `db:"name"      json:"name"      validate:"omitempty,min=1,max=100"`
	Email    *string `db:"email"     json:"email"     validate:"omitempty,min=1,max=100"`
	Phone    *string `db:"phone"     json:"phone"     validate:"omitempty,min=1,max=20"`
	Address  *string `db:"address"   json:"address"   validate:"omitempty,max=200"`
	IDType   *string `db:"id_type"   json:"id_type"   validate:"omitempty,min=1,max=50"`
	IDNumber *string `db:"id_number" json:"id_number" validate:"omitempty,min=1,max=50"`
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
	ID              int64         `json:"id"`
	GuestID         int64         `json:"guest_id"`
	RoomID          *int64        `json:"room_id"`
	CheckInDate     string        `json:"check_in_date"`
	CheckOutDate    string        `json:"check_out_date"`
	Status          string        `json:"status"`
	SpecialRequests *string       `json:"special_requests"`
	Room            *RoomResponse `json:"room"`
}

type GuestResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Address      *string               `json:"address"`
	IDType       string                `json:"id_type"`
	IDNumber     string                `json:"id_number"`
	Reservations []ReservationResponse `json:"reservations"`
}

// FromModel fills the guest and its reservations. rooms is keyed by room id;
// a reservation whose room is gone renders with a null room.
func (g *GuestResponse) FromModel(guest model.Guest, reservations []resModel.Reservation, rooms map[int64]roomModel.Room) {
	g.ID = guest.ID
	g.Name = guest.Name
	g.Email = guest.Email
	g.Phone = guest.Phone
	g.Address = guest.Address
	g.IDType = guest.IDType
	g.IDNumber = guest.IDNumber

	g.Reservations = make([]ReservationResponse, 0, len(reservations))

	for _, res := range reservations {
		if res.GuestID != guest.ID {
			continue
		}

		item := ReservationResponse{
			ID:              res.ID,
			GuestID:         res.GuestID,
			RoomID:          res.RoomID,
			CheckInDate:     res.CheckInDate.Format(constant.ISODateTimeFormat),
			CheckOutDate:    res.CheckOutDate.Format(constant.ISODateTimeFormat),
			Status:          res.Status,
			SpecialRequests: res.SpecialRequests,
		}

		if res.RoomID != nil {
			if room, ok := rooms[*res.RoomID]; ok {
				item.Room = &RoomResponse{
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

		g.Reservations = append(g.Reservations, item)
	}
}

// FromModels renders guests in the given order.
func FromModels(guests []model.Guest, reservations []resModel.Reservation, rooms map[int64]roomModel.Room) []GuestResponse {
	byGuest := make(map[int64][]resModel.Reservation, len(guests))
	for _, reservation := range reservations {
		byGuest[reservation.GuestID] = append(byGuest[reservation.GuestID], reservation)
	}

	res := make([]GuestResponse, len(guests))
	for i, guest := range guests {
		res[i].FromModel(guest, byGuest[guest.ID], rooms)
	}

	return res
}
