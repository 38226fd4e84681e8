package api

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses accepted from PMs.
const (
	ProjectActive   = "active"
	ProjectOnHold   = "on_hold"
	ProjectArchived = "archived"
)

// Project is a PM-owned engagement whose status is reported to one client
// contact.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PMID        uuid.UUID `json:"pm_id" db:"pm_id"`
	Name        string    `json:"name" db:"name"`
	ClientName  string    `json:"client_name" db:"client_name"`
	ClientEmail string    `json:"client_email" db:"client_email"`
	Status      string    `json:"status" db:"status"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func validProjectStatus(s string) bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectArchived:
		return true
	}
	return false
}
