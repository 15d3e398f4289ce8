package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a sales representative account. Position is printed under the
// signature line of generated contracts.
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Position  string    `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
