package shared

import (
	"errors"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID reads a positive integer path or query parameter.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// ConvertStringToInt64 returns nil for an empty or malformed value.
func ConvertStringToInt64(value string) *int64 {
	if value == "" {
		return nil
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("failed to convert string to int64")

		return nil
	}

	return &id
}

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// TransformFields maps the non-nil pointer fields of a patch struct to their
// `db` columns. Non-pointer fields are copied only when non-zero.
func TransformFields(data any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		field := val.Field(index)

		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				continue
			}

			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		if field.IsZero() {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return FilterByField(fieldID, id, table)
}

// FilterByField matches rows whose field equals value.
func FilterByField(field string, value any, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByIDs matches any of ids; duplicates are collapsed.
func FilterByIDs(ids []int64, fieldID, table string) dto.FilterGroup {
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    unique,
				Operator: dto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports a Postgres unique constraint failure, optionally
// restricted to one constraint name.
func IsUniqueViolation(err error, constraint ...string) bool {
	if pqCode(err) != constant.PqErrorCodeUniqueViolation {
		return false
	}

	if len(constraint) == 0 {
		return true
	}

	var pqErr *pq.Error
	errors.As(err, &pqErr)

	return slices.Contains(constraint, pqErr.Constraint)
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}
