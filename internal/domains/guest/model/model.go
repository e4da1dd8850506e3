package model

import "time"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldUpdatedAt = "updated_at"

	ConstraintEmailUnique = "guests_email_key"
)

// SortableFields are the columns a guest listing may be ordered by.
var SortableFields = []string{FieldID, FieldName, FieldEmail}

type Guest struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   *string   `db:"address"`
	IDType    string    `db:"id_type"`
	IDNumber  string    `db:"id_number"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
