package api

import (
	"time"

	"github.com/google/uuid"
)

type projectModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PMID        uuid.UUID `gorm:"column:pm_id;type:uuid;index;not null"`
	Name        string    `gorm:"type:text;not null"`
	ClientName  string    `gorm:"type:text"`
	ClientEmail string    `gorm:"type:text"`
	Status      string    `gorm:"type:text;not null;default:'active'"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (projectModel) TableName() string { return "projects" }

func (m projectModel) toAPI() Project {
	return Project{
		ID:          m.ID,
		PMID:        m.PMID,
		Name:        m.Name,
		ClientName:  m.ClientName,
		ClientEmail: m.ClientEmail,
		Status:      m.Status,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
