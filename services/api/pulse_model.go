package api

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type pulseModel struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID         `gorm:"type:uuid;index;not null"`
	AuthorID    uuid.UUID         `gorm:"type:uuid;not null"`
	WeekOf      time.Time         `gorm:"type:date;not null"`
	Health      string            `gorm:"type:text;not null"`
	Summary     string            `gorm:"type:text;not null"`
	Details     string            `gorm:"type:text"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb"`
	PublishedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

func (pulseModel) TableName() string { return "pulses" }

func (m pulseModel) toAPI() Pulse {
	return Pulse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		AuthorID:    m.AuthorID,
		WeekOf:      m.WeekOf,
		Health:      m.Health,
		Summary:     m.Summary,
		Details:     m.Details,
		Meta:        map[string]any(m.Meta),
		PublishedAt: m.PublishedAt,
	}
}

func toJSONMap(in map[string]any) datatypes.JSONMap {
	if in == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(in)
}
