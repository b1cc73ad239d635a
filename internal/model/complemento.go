package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ElementoDecorativo is a flat-priced add-on (topper, candles, figurines).
// PrecioUnitario is nullable: legacy catalog rows may lack a price, in which
// case attaching the element to a cake fails instead of pricing it at zero.
type ElementoDecorativo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"not null"`
	Descripcion    *string
	ImagenURL      *string          `gorm:"column:imagen_url"`
	PrecioUnitario *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Activo         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ElementoDecorativo) TableName() string { return "elementos_decorativos" }

// Extra is a flat-priced cake extra (special filling, dedication plaque, …).
type Extra struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"not null"`
	Descripcion    *string
	PrecioUnitario *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Activo         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Extra) TableName() string { return "extras" }
