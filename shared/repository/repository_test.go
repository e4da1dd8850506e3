package repository

import (
	"hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

type baseRow struct {
	ID        int64  `db:"id"`
	CreatedBy string `db:"created_by" insert:"-"`
}

type joinedRow struct {
	baseRow
	Name     string `db:"name"`
	RoomID   int64  `db:"room_id"   table:"room_amenities"`
	Label    string `db:"label"     column:"name" table:"rooms"`
	Computed string
	Skipped  string `db:"-"`
}

func (joinedRow) GetJoinQuery() string {
	return "JOIN room_amenities ON room_amenities.amenity_id = amenities.id"
}

type plainRow struct {
	RoomID    int64 `db:"room_id"`
	AmenityID int64 `db:"amenity_id"`
}

func TestNewRepository_Columns(t *testing.T) {
	repo := NewRepository[joinedRow]("amenity", "amenities", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"name"}, repo.InsertColumns)
	assert.Equal(t,
		"amenities.id, amenities.created_by, amenities.name, room_amenities.room_id, rooms.name AS label",
		repo.getSelectQuery(),
	)
	assert.Equal(t, "JOIN room_amenities ON room_amenities.amenity_id = amenities.id", repo.join)
}

func TestNewRepository_WithoutPrimaryKey(t *testing.T) {
	repo := NewRepository[plainRow]("room_amenity", "room_amenities", "", nil, mocks.NewOtel())

	assert.Equal(t, []string{"room_id", "amenity_id"}, repo.InsertColumns)
	assert.Empty(t, repo.join)
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[plainRow]("room_amenity", "room_amenities", "", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.And(
		dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "amenity_id", Value: int64(2), Operator: dto.FilterOperatorEq},
	))
	assert.Equal(t, " WHERE (room_id = :room_id AND amenity_id = :amenity_id) ", where)
	assert.Equal(t, map[string]any{"room_id": int64(1), "amenity_id": int64(2)}, args)
}
