package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portion price tables. Each portion-priced component keeps its own table with
// its own foreign key column; the pair (component, porciones) is unique so a
// lookup by exact portion count resolves to at most one price.

type PrecioPorcionTortaBase struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TortaBaseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uni_precio_torta_base_porciones"`
	Porciones   int             `gorm:"not null;uniqueIndex:uni_precio_torta_base_porciones"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PrecioPorcionTortaBase) TableName() string { return "precios_porcion_torta_base" }

type PrecioPorcionCobertura struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CoberturaID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uni_precio_cobertura_porciones"`
	Porciones   int             `gorm:"not null;uniqueIndex:uni_precio_cobertura_porciones"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PrecioPorcionCobertura) TableName() string { return "precios_porcion_cobertura" }

type PrecioPorcionDecoracion struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DecoracionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uni_precio_decoracion_porciones"`
	Porciones    int             `gorm:"not null;uniqueIndex:uni_precio_decoracion_porciones"`
	Precio       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PrecioPorcionDecoracion) TableName() string { return "precios_porcion_decoracion" }

type PrecioPorcionMiniTorta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MiniTortaID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uni_precio_mini_torta_porciones"`
	Porciones   int             `gorm:"not null;uniqueIndex:uni_precio_mini_torta_porciones"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PrecioPorcionMiniTorta) TableName() string { return "precios_porcion_mini_torta" }

// PrecioPorcion is the table-agnostic row shape used by the repository when
// reading any of the four tables above. ComponenteID is populated from
// whichever foreign key column the source table carries.
type PrecioPorcion struct {
	ID           uuid.UUID       `json:"id"`
	ComponenteID uuid.UUID       `json:"-"`
	Porciones    int             `json:"porciones"`
	Precio       decimal.Decimal `json:"precio"`
}
