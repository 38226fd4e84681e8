package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:text;uniqueIndex;not null"`
	Name         string    `gorm:"type:text;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PMID        uuid.UUID `gorm:"column:pm_id;type:uuid;not null;index"`
	Name        string    `gorm:"type:text;not null"`
	ClientName  string    `gorm:"type:text"`
	ClientEmail string    `gorm:"type:text"`
	Status      string    `gorm:"type:text;not null;default:'active'"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
	PM          User      `gorm:"foreignKey:PMID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:text;not null;default:'planned'"`
	WeekStart time.Time `gorm:"type:date;not null;index"`
	Position  int       `gorm:"type:integer;not null;default:0"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
	Project   Project   `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Pulse struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID         `gorm:"type:uuid;not null"`
	WeekOf      time.Time         `gorm:"type:date;not null"`
	Health      string            `gorm:"type:text;not null"`
	Summary     string            `gorm:"type:text;not null"`
	Details     string            `gorm:"type:text"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb"`
	PublishedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	Project     Project           `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author      User              `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type AccessToken struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientEmail string     `gorm:"type:text;not null"`
	Token       string     `gorm:"type:text;uniqueIndex;not null"`
	ExpiresAt   time.Time  `gorm:"type:timestamptz;not null"`
	LastUsedAt  *time.Time `gorm:"type:timestamptz"`
	IsActive    bool       `gorm:"type:boolean;not null;default:true"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
	Project     Project    `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&User{},
		&Project{},
		&Task{},
		&Pulse{},
		&AccessToken{},
	); err != nil {
		return err
	}

	m := gormDB.WithContext(ctx).Migrator()
	if err := m.CreateConstraint(&Project{}, "PM"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&Task{}, "Project"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&Pulse{}, "Project"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&AccessToken{}, "Project"); err != nil {
		return err
	}

	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().DropTable(
		&AccessToken{},
		&Pulse{},
		&Task{},
		&Project{},
		&User{},
	)
}
