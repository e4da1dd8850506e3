package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/amenity/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Amenity interface {
	Insert(ctx context.Context, model model.Amenity) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Amenity, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Amenity, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

// RoomAmenity reads and writes the room_amenities link table.
type RoomAmenity interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.RoomAmenity) (int64, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RoomAmenity, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Amenity]
}

func New(db *postgres.Connection, otel otel.Otel) Amenity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Amenity](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type roomAmenityImpl struct {
	gRepo.Repository[model.RoomAmenity]
}

// NewRoomAmenity builds the link table repository. The table has a composite
// key, so inserts return no id.
func NewRoomAmenity(db *postgres.Connection, otel otel.Otel) RoomAmenity {
	return &roomAmenityImpl{
		Repository: gRepo.NewRepository[model.RoomAmenity](model.RoomAmenityEntityName, model.RoomAmenityTableName, "", db, otel),
	}
}
