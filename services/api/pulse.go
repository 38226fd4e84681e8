package api

import (
	"time"

	"github.com/google/uuid"
)

// Pulse health values, worst to best: red, amber, green.
const (
	HealthGreen = "green"
	HealthAmber = "amber"
	HealthRed   = "red"
)

// Pulse is one published weekly status update.
type Pulse struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	ProjectID   uuid.UUID      `json:"project_id" db:"project_id"`
	AuthorID    uuid.UUID      `json:"author_id" db:"author_id"`
	WeekOf      time.Time      `json:"week_of" db:"week_of"`
	Health      string         `json:"health" db:"health"`
	Summary     string         `json:"summary" db:"summary"`
	Details     string         `json:"details" db:"details"`
	Meta        map[string]any `json:"meta,omitempty" db:"meta"`
	PublishedAt time.Time      `json:"published_at" db:"published_at"`
}

func validHealth(s string) bool {
	switch s {
	case HealthGreen, HealthAmber, HealthRed:
		return true
	}
	return false
}
