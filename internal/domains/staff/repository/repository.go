package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/staff/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Staff interface {
	Insert(ctx context.Context, model model.Staff) (int64, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Staff) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Staff, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Staff, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Staff, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Staff, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Staff]
}

func New(db *postgres.Connection, otel otel.Otel) Staff {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Staff](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
