package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Flat catalog products quoted by their list price (no composition).

// MiniTorta is an individual-size cake. Quotes use the flat Precio; the
// portion-price table for mini tortas is admin-maintained reference data.
type MiniTorta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string          `gorm:"column:imagen_url"`
	Precio      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Porciones   *int
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MiniTorta) TableName() string { return "mini_tortas" }

// Postre is a dessert (flan, cheesecake slice, …).
type Postre struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string          `gorm:"column:imagen_url"`
	Precio      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Activo      bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Postre) TableName() string { return "postres" }

// OtroProducto covers anything else the bakery sells (cookies, boxes, …).
type OtroProducto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string          `gorm:"column:imagen_url"`
	Precio      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Activo      bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OtroProducto) TableName() string { return "otros_productos" }
