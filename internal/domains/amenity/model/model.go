package model

const (
	TableName  = "amenities"
	EntityName = "amenity"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"

	RoomAmenityTableName  = "room_amenities"
	RoomAmenityEntityName = "room_amenity"

	FieldRoomID    = "room_id"
	FieldAmenityID = "amenity_id"
)

var SortableFields = []string{FieldID, FieldName}

type Amenity struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

// RoomAmenity is a row of the room/amenity link table joined with the amenity
// it points to. Only room_id and amenity_id are written.
type RoomAmenity struct {
	RoomID      int64   `db:"room_id"`
	AmenityID   int64   `db:"amenity_id"`
	Name        string  `db:"name"        table:"amenities"`
	Description *string `db:"description" table:"amenities"`
}

func (RoomAmenity) GetJoinQuery() string {
	return "JOIN amenities ON amenities.id = room_amenities.amenity_id"
}

func (r RoomAmenity) Amenity() Amenity {
	return Amenity{
		ID:          r.AmenityID,
		Name:        r.Name,
		Description: r.Description,
	}
}
