package entity

import (
	"github.com/google/uuid"
)

// Customer is the profile record behind a directory user. Exactly one
// customer exists per user; it is created together with the user and
// updated independently afterwards.
type Customer struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Phone     *string   `db:"phone"`
}
