package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("nothing to update")
)

type column struct {
	name  string
	table string
	alias string
}

// Executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type Executor interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a sqlx-backed table gateway driven by the `db`, `table` and
// `column` struct tags of T. A type may expose GetJoinQuery() string to read
// columns from joined tables; only fields of the base table are inserted.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	// The generated key is never written by the application.
	insertColumns = slices.DeleteFunc(insertColumns, func(col string) bool {
		return col == primaryColumn
	})

	joinQueryStr := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		joinQueryStr = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinQueryStr,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) spanName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op)
}

func (repo *Repository[T]) insert(ctx context.Context, exec Executor, model T) (id int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("insert"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))

	if repo.primaryColumn == "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		if _, err = exec.NamedExecContext(ctx, query, model); err != nil {
			logger.ErrorWithStack(err)

			return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
		}

		return 0, nil
	}

	query = fmt.Sprintf("%s RETURNING %s", query, repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &id, model); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	return id, nil
}

// Insert stores model and returns the generated primary key (0 for tables without one).
func (repo *Repository[T]) Insert(ctx context.Context, model T) (int64, error) {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) exist(ctx context.Context, exec Executor, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Exist"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s %s)", repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &exist, args); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return exist, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) get(ctx context.Context, exec Executor, filter dto.FilterGroup) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT 1", repo.getSelectQuery(), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return model, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, error) {
	return repo.get(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (T, error) {
	return repo.get(ctx, sqltx, filter)
}

func (repo *Repository[T]) getAll(ctx context.Context, exec Executor, params dto.QueryParams, filter dto.FilterGroup) (models []T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := repo.BuildWhereClause(filter)

	var ordering, pagination string

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		args["limit"] = limit
		args["offset"] = (page - 1) * limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 {
		args["limit"] = limit

		pagination = "LIMIT :limit"
	}

	if params.SortBy != "" {
		sortDir := params.SortDir
		if sortDir != dto.SortDirDesc {
			sortDir = dto.SortDirAsc
		}

		ordering = fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, sortDir)
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s", repo.getSelectQuery(), repo.table, repo.join, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	models = []T{}

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

// GetAll lists matching rows. An empty result is a non-nil empty slice.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, params, filter)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	return repo.getAll(ctx, sqltx, params, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, exec Executor, filter dto.FilterGroup) (affected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("delete"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	affected, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows (%s): %w", repo.entitas, err)
	}

	return affected, nil
}

// Delete removes matching rows and reports how many were removed.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (int64, error) {
	return repo.delete(ctx, sqltx, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec Executor, mod map[string]any, filter dto.FilterGroup) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("update"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(mod) == 0 {
		return errEmptyUpdate
	}

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	// Sorted for a deterministic statement.
	cols := slices.Collect(maps.Keys(mod))
	sort.Strings(cols)

	updateField := make([]string, 0, len(cols))
	for _, col := range cols {
		updateField = append(updateField, fmt.Sprintf("%s = :set_%s", col, col))
		args["set_"+col] = mod[col]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(updateField, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = exec.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return nil
}

// Update sets the given column values on matching rows.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, mod, filter)
}

func (repo *Repository[T]) getSelectQuery() string {
	columns := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		switch {
		case col.table == "":
			columns = append(columns, col.name)
		case col.alias != "":
			columns = append(columns, fmt.Sprintf("%s.%s AS %s", col.table, col.name, col.alias))
		default:
			columns = append(columns, fmt.Sprintf("%s.%s", col.table, col.name))
		}
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		dbTag := field.Tag.Get("db")
		tableField := field.Tag.Get("table")
		colTag := field.Tag.Get("column")

		if tableField == "" {
			tableField = table
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		if dbTag == "" || dbTag == "-" {
			continue
		}

		if tableField == table && field.Tag.Get("insert") != "-" {
			insertColumns = append(insertColumns, dbTag)
		}

		if colTag == "" {
			columns = append(columns, column{name: dbTag, table: tableField})
		} else {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		}
	}

	return columns, insertColumns
}
