package model

import (
	"hotel/shared/constant"
	"slices"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldGuestID         = "guest_id"
	FieldRoomID          = "room_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

var SortableFields = []string{FieldID, FieldGuestID, FieldRoomID, FieldCheckInDate, FieldCheckOutDate, FieldStatus}

// Reservation is a stay of one guest in one room. RoomID is nil once the room
// has been deleted.
type Reservation struct {
	ID              int64     `db:"id"`
	GuestID         int64     `db:"guest_id"`
	RoomID          *int64    `db:"room_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	Status          string    `db:"status"`
	SpecialRequests *string   `db:"special_requests"`
}

// IsActive reports whether the reservation currently holds its room.
func (r Reservation) IsActive() bool {
	return slices.Contains(constant.ActiveReservationStatuses, r.Status)
}

// Covers reports whether the stay occupies the given calendar day. The
// interval is half-open: the check-out day itself is free.
func (r Reservation) Covers(day time.Time) bool {
	target := civil(day)

	return civil(r.CheckInDate) <= target && target < civil(r.CheckOutDate)
}

func civil(t time.Time) int {
	y, m, d := t.Date()

	return y*10000 + int(m)*100 + d
}
