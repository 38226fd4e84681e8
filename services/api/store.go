package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"pulsed/pkg/bus"
	"pulsed/services/mailer"
)

// Store holds external dependencies required by the API layer. Bus and Mail
// are optional; handlers degrade to skipping events and mail when nil or
// disabled.
type Store struct {
	DB   *pgxpool.Pool
	ORM  *gorm.DB
	Bus  *bus.Bus
	Mail *mailer.Sender
}
