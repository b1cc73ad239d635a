package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component type discriminators used across repositories, services and the
// public price check endpoint.
const (
	TipoTortaBase  = "torta_base"
	TipoCobertura  = "cobertura"
	TipoDecoracion = "decoracion"

	TipoElementoDecorativo = "elemento_decorativo"
	TipoExtra              = "extra"
	TipoMiniTorta          = "mini_torta"
	TipoPostre             = "postre"
	TipoOtroProducto       = "otro_producto"
)

// TortaBase is a base cake (sponge + filling combination). Its price depends
// on the portion count and lives in PrecioPorcionTortaBase.
type TortaBase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string `gorm:"column:imagen_url"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (TortaBase) TableName() string { return "tortas_base" }

// Cobertura is a cake covering (buttercream, fondant, …), portion-priced.
type Cobertura struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string `gorm:"column:imagen_url"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Cobertura) TableName() string { return "coberturas" }

// Decoracion is a decoration theme, portion-priced. It can be the cake's main
// decoration or attached as an additional decoration via DecoracionPorTorta.
type Decoracion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string `gorm:"column:imagen_url"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Decoracion) TableName() string { return "decoraciones" }

// ComponenteCatalogo is the table-agnostic row shape the catalog repository
// reads and writes for all eight catalog types. Precio is nil for the
// portion-priced components; Porciones applies to mini tortas only.
type ComponenteCatalogo struct {
	ID          uuid.UUID        `json:"id"`
	Nombre      string           `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	ImagenURL   *string          `json:"imagen_url"`
	Precio      *decimal.Decimal `json:"precio"`
	Porciones   *int             `json:"porciones"`
	Activo      bool             `json:"activo"`
}
