package api

import (
	"time"

	"github.com/google/uuid"
)

type tokenModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientEmail string     `gorm:"type:text;not null"`
	Token       string     `gorm:"type:text;uniqueIndex;not null"`
	ExpiresAt   time.Time  `gorm:"type:timestamptz;not null"`
	LastUsedAt  *time.Time `gorm:"type:timestamptz"`
	IsActive    bool       `gorm:"type:boolean;not null;default:true"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (tokenModel) TableName() string { return "access_tokens" }

func (m tokenModel) toAPI() AccessToken {
	return AccessToken{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		ClientEmail: m.ClientEmail,
		Value:       m.Token,
		ExpiresAt:   m.ExpiresAt,
		LastUsedAt:  m.LastUsedAt,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
