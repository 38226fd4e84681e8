package api

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a bearer credential granting read-only portal access to one
// (project, client email) pair. Validity is decided entirely by the stored
// row, which is what makes instant revocation possible.
type AccessToken struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id"`
	ClientEmail string     `json:"client_email" db:"client_email"`
	Value       string     `json:"-" db:"token"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	LastUsedAt  *time.Time `json:"last_used_at" db:"last_used_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// ExpiredAt reports whether the token is past its absolute expiry. The active
// flag is a separate gate and is not consulted here.
func (t AccessToken) ExpiredAt(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Redacted returns a short prefix safe to show in PM-facing listings.
func (t AccessToken) Redacted() string {
	if len(t.Value) <= 8 {
		return t.Value
	}
	return t.Value[:8] + "..."
}
