package model

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID    = "id"
	FieldEmail = "email"

	ConstraintEmailUnique = "staff_email_key"
)

type Staff struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Position     string `db:"position"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
}
