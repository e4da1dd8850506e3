package shared_test

import (
	"errors"
	"fmt"
	"hotel/shared"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "9007199254740993", want: 9007199254740993},
		{input: "0", wantErr: true},
		{input: "-4", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := shared.ParseID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidID)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertStringToInt64(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToInt64(""))
	assert.Nil(t, shared.ConvertStringToInt64("x1"))

	got := shared.ConvertStringToInt64("12")
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(12), *got)
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "session:abc", shared.BuildCacheKey("session", "abc"))
	assert.Equal(t, "ratelimit:10.0.0.1:curl", shared.BuildCacheKey("ratelimit", "10.0.0.1", "curl"))
}

type patch struct {
	Name     *string  `db:"name"`
	Price    *float64 `db:"price"`
	Capacity *int     `db:"capacity"`
	Status   string   `db:"status"`
	Ignored  *string
}

func TestTransformFields(t *testing.T) {
	name := "Deluxe"
	zero := 0.0

	got := shared.TransformFields(patch{Name: &name, Price: &zero})
	assert.Equal(t, map[string]any{"name": "Deluxe", "price": 0.0}, got)

	got = shared.TransformFields(&patch{Status: "maintenance", Ignored: &name})
	assert.Equal(t, map[string]any{"status": "maintenance"}, got)

	assert.Empty(t, shared.TransformFields(patch{}))
}

func TestFilterByIDs(t *testing.T) {
	group := shared.FilterByIDs([]int64{3, 1, 3}, "id", "rooms")

	where, args := group.GetWhereClause()
	assert.Equal(t, "(rooms.id IN (:id_0, :id_1))", where)
	assert.Equal(t, map[string]any{"id_0": int64(1), "id_1": int64(3)}, args)

	single := shared.FilterByID(7, "id", "")
	where, args = single.GetWhereClause()
	assert.Equal(t, "(id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(7)}, args)

}

func TestPostgresErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "guests_email_key"})
	fk := fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})

	assert.True(t, shared.IsUniqueViolation(unique))
	assert.True(t, shared.IsUniqueViolation(unique, "guests_email_key"))
	assert.False(t, shared.IsUniqueViolation(unique, "rooms_room_number_key"))
	assert.False(t, shared.IsUniqueViolation(fk))
	assert.True(t, shared.IsForeignKeyViolation(fk))
	assert.False(t, shared.IsForeignKeyViolation(errors.New("plain")))
}
