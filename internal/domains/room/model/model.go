package model

import "hotel/shared/constant"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldRoomType   = "room_type"
	FieldPrice      = "price"
	FieldCapacity   = "capacity"
	FieldStatus     = "status"
	FieldImageURL   = "image_url"

	ConstraintRoomNumberUnique = "rooms_room_number_key"
)

var SortableFields = []string{FieldID, FieldRoomNumber, FieldRoomType, FieldPrice, FieldCapacity, FieldStatus}

type Room struct {
	ID         int64   `db:"id"`
	RoomNumber string  `db:"room_number"`
	RoomType   string  `db:"room_type"`
	Price      float64 `db:"price"`
	Capacity   int     `db:"capacity"`
	Status     string  `db:"status"`
	ImageURL   *string `db:"image_url"`
}

// IsBlocked reports an administrative status that keeps the room off the market.
func (r Room) IsBlocked() bool {
	return r.Status != constant.RoomStatusAvailable
}
