package api

import (
	"time"

	"github.com/google/uuid"
)

// User is a project manager account. Clients never have accounts; they hold
// access tokens instead.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
