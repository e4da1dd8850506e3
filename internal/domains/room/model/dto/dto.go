package dto

import (
	amenityModel "hotel/internal/domains/amenity/model"
	guestModel "hotel/internal/domains/guest/model"
	resModel "hotel/internal/domains/reservation/model"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"mime/multipart"
)

type CreateRoomRequest struct {
	RoomNumber *string  `json:"room_number" validate:"required,max=20"`
	RoomType   *string  `json:"room_type"   validate:"required,max=50"`
	Price      *float64 `json:"price"       validate:"required,gte=0"`
	Capacity   *int     `json:"capacity"    validate:"required,gte=0"`
	Status     *string  `json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	status := constant.RoomStatusAvailable
	if c.Status != nil {
		status = *c.Status
	}

	return model.Room{
		RoomNumber: *c.RoomNumber,
		RoomType:   *c.RoomType,
		Price:      *c.Price,
		Capacity:   *c.Capacity,
		Status:     status,
	}
}

type UpdateRoomRequest struct {
	RoomNumber *string  `db:"room_number" json:"room_number" validate:"omitempty,min=1,max=20"`
	RoomType   *string  `db:"room_type"   json:"room_type"   validate:"omitempty,min=1,max=50"`
	Price      *float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Capacity   *int     `db:"capacity"    json:"capacity"    validate:"omitempty,gte=0"`
	Status     *string  `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
}

// UploadImageRequest carries the multipart photo of a room.
type UploadImageRequest struct {
	Image *multipart.FileHeader `form:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

type AmenityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
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

type ReservationResponse struct {
	ID              int64          `json:"id"`
	GuestID         int64          `json:"guest_id"`
	RoomID          *int64         `json:"room_id"`
	CheckInDate     string         `json:"check_in_date"`
	CheckOutDate    string         `json:"check_out_date"`
	Status          string         `json:"status"`
	SpecialRequests *string        `json:"special_requests"`
	Guest           *GuestResponse `json:"guest"`
}

type RoomResponse struct {
	ID           int64                 `json:"id"`
	RoomNumber   string                `json:"room_number"`
	RoomType     string                `json:"room_type"`
	Price        float64               `json:"price"`
	Capacity     int                   `json:"capacity"`
	Status       string                `json:"status"`
	ImageURL     *string               `json:"image_url"`
	Amenities    []AmenityResponse     `json:"amenities"`
	Reservations []ReservationResponse `json:"reservations"`
}

// Relations holds everything loaded alongside a batch of rooms.
type Relations struct {
	Amenities    []amenityModel.RoomAmenity
	Reservations []resModel.Reservation
	Guests       map[int64]guestModel.Guest
}

func (r *RoomResponse) FromModel(room model.Room, amenities []amenityModel.RoomAmenity, reservations []resModel.Reservation, guests map[int64]guestModel.Guest) {
	r.ID = room.ID
	r.RoomNumber = room.RoomNumber
	r.RoomType = room.RoomType
	r.Price = room.Price
	r.Capacity = room.Capacity
	r.Status = room.Status
	r.ImageURL = room.ImageURL

	r.Amenities = make([]AmenityResponse, 0, len(amenities))
	for _, amenity := range amenities {
		r.Amenities = append(r.Amenities, AmenityResponse{
			ID:          amenity.AmenityID,
			Name:        amenity.Name,
			Description: amenity.Description,
		})
	}

	r.Reservations = make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		item := ReservationResponse{
			ID:              res.ID,
			GuestID:         res.GuestID,
			RoomID:          res.RoomID,
			CheckInDate:     res.CheckInDate.Format(constant.ISODateTimeFormat),
			CheckOutDate:    res.CheckOutDate.Format(constant.ISODateTimeFormat),
			Status:          res.Status,
			SpecialRequests: res.SpecialRequests,
		}

		if guest, ok := guests[res.GuestID]; ok {
			item.Guest = &GuestResponse{
				ID:       guest.ID,
				Name:     guest.Name,
				Email:    guest.Email,
				Phone:    guest.Phone,
				Address:  guest.Address,
				IDType:   guest.IDType,
				IDNumber: guest.IDNumber,
			}
		}

		r.Reservations = append(r.Reservations, item)
	}
}

func FromModels(rooms []model.Room, rel Relations) []RoomResponse {
	amenities := make(map[int64][]amenityModel.RoomAmenity, len(rooms))
	for _, amenity := range rel.Amenities {
		amenities[amenity.RoomID] = append(amenities[amenity.RoomID], amenity)
	}

	reservations := make(map[int64][]resModel.Reservation, len(rooms))
	for _, reservation := range rel.Reservations {
		if reservation.RoomID == nil {
			continue
		}

		reservations[*reservation.RoomID] = append(reservations[*reservation.RoomID], reservation)
	}

	res := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room, amenities[room.ID], reservations[room.ID], rel.Guests)
	}

	return res
}
