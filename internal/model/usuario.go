package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario identifies who created a quote or changed its state. Authentication
// lives in a separate system; only the reference is kept here.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Email     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
