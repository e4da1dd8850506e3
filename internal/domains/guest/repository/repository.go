package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Guest interface {
	Insert(ctx context.Context, model model.Guest) (int64, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Guest) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Guest, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Guest, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Guest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
