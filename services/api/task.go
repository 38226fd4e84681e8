package api

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses on the weekly roadmap board.
const (
	TaskPlanned    = "planned"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
	TaskBlocked    = "blocked"
)

// Task is one roadmap item, slotted into the week beginning WeekStart and
// ordered within that week by Position.
type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	Status    string    `json:"status" db:"status"`
	WeekStart time.Time `json:"week_start" db:"week_start"`
	Position  int       `json:"position" db:"position"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func validTaskStatus(s string) bool {
	switch s {
	case TaskPlanned, TaskInProgress, TaskDone, TaskBlocked:
		return true
	}
	return false
}
