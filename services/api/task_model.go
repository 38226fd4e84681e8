package api

import (
	"time"

	"github.com/google/uuid"
)

type taskModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:text;not null;default:'planned'"`
	WeekStart time.Time `gorm:"type:date;index;not null"`
	Position  int       `gorm:"type:integer;not null;default:0"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (taskModel) TableName() string { return "tasks" }

func (m taskModel) toAPI() Task {
	return Task{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Title:     m.Title,
		Status:    m.Status,
		WeekStart: m.WeekStart,
		Position:  m.Position,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
