package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetalleTorta is the composition of a custom cake belonging to exactly one
// quote item. The three Precio* columns are snapshots taken from the portion
// price tables at build time; later catalog price changes never reprice an
// already built cake. A snapshot is nil when the cake has no such component.
type DetalleTorta struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemCotizacionID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	TortaBaseID      *uuid.UUID `gorm:"type:uuid;index"`
	CoberturaID      *uuid.UUID `gorm:"type:uuid;index"`
	DecoracionID     *uuid.UUID `gorm:"type:uuid;index"`
	Porciones        int        `gorm:"not null"`
	PrecioBase       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrecioCobertura  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrecioDecoracion *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ImagenURL        *string          `gorm:"column:imagen_url"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	TortaBase  *TortaBase  `gorm:"foreignKey:TortaBaseID"`
	Cobertura  *Cobertura  `gorm:"foreignKey:CoberturaID"`
	Decoracion *Decoracion `gorm:"foreignKey:DecoracionID"`

	Elementos              []ElementoPorTorta   `gorm:"foreignKey:DetalleTortaID"`
	Extras                 []ExtraPorTorta      `gorm:"foreignKey:DetalleTortaID"`
	DecoracionesAdicionales []DecoracionPorTorta `gorm:"foreignKey:DetalleTortaID"`
}

func (DetalleTorta) TableName() string { return "detalles_torta" }

// ElementoPorTorta links a decorative element to a cake with a quantity and
// the unit price captured at attach time. PrecioTotal = Cantidad × PrecioUnitario.
type ElementoPorTorta struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DetalleTortaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ElementoDecorativoID uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad             int             `gorm:"not null"`
	PrecioUnitario       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	ElementoDecorativo *ElementoDecorativo `gorm:"foreignKey:ElementoDecorativoID"`
}

func (ElementoPorTorta) TableName() string { return "elementos_por_torta" }

// ExtraPorTorta links an extra to a cake, same pricing rules as elements.
type ExtraPorTorta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DetalleTortaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ExtraID        uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Extra *Extra `gorm:"foreignKey:ExtraID"`
}

func (ExtraPorTorta) TableName() string { return "extras_por_torta" }

// DecoracionPorTorta attaches an additional decoration to a cake. Unlike
// elements and extras the unit price comes from the decoration's portion
// price table, resolved at the cake's portion count.
type DecoracionPorTorta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DetalleTortaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	DecoracionID   uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Decoracion *Decoracion `gorm:"foreignKey:DecoracionID"`
}

func (DecoracionPorTorta) TableName() string { return "decoraciones_por_torta" }
