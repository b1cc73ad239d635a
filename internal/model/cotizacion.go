package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote lifecycle states. Any state may transition to any other; validity is
// membership only, and every change appends a HistorialEstado row.
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoAprobada   = "APROBADA"
	EstadoRechazada  = "RECHAZADA"
	EstadoCompletada = "COMPLETADA"
	EstadoCancelada  = "CANCELADA"
)

// EsEstadoValido reports whether estado is one of the five quote states.
func EsEstadoValido(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoAprobada, EstadoRechazada, EstadoCompletada, EstadoCancelada:
		return true
	}
	return false
}

// Product types a quote item can reference.
const (
	TipoProductoTorta        = "torta"
	TipoProductoMiniTorta    = "mini_torta"
	TipoProductoPostre       = "postre"
	TipoProductoOtroProducto = "otro_producto"
)

// Cotizacion is the quote aggregate root. Total is always recomputed and
// persisted after any item mutation, never derived lazily at read time.
type Cotizacion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroCotizacion  string    `gorm:"uniqueIndex;not null"`
	ClienteID         uuid.UUID `gorm:"type:uuid;index;not null"`
	FechaEvento       *time.Time
	Observaciones     *string
	SucursalID        *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioCreadorID  *uuid.UUID      `gorm:"type:uuid;index"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Estado            string          `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Cliente        *Cliente          `gorm:"foreignKey:ClienteID"`
	Sucursal       *Sucursal         `gorm:"foreignKey:SucursalID"`
	UsuarioCreador *Usuario          `gorm:"foreignKey:UsuarioCreadorID"`
	Items          []ItemCotizacion  `gorm:"foreignKey:CotizacionID"`
	Historial      []HistorialEstado `gorm:"foreignKey:CotizacionID"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// ItemCotizacion is one quoted line. For tipo "torta", ProductoID points to
// the DetalleTorta owned by this item; for flat products it points to the
// catalog row. PrecioTotal = Cantidad × PrecioUnitario.
type ItemCotizacion struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	TipoProducto   string     `gorm:"type:varchar(20);not null"`
	ProductoID     *uuid.UUID `gorm:"type:uuid;index"`
	NombreProducto string     `gorm:"not null"`
	Cantidad       int        `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	DetalleTorta *DetalleTorta `gorm:"foreignKey:ItemCotizacionID"`
}

func (ItemCotizacion) TableName() string { return "items_cotizacion" }

// HistorialEstado is the append-only state log of a quote.
type HistorialEstado struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Estado       string     `gorm:"type:varchar(20);not null"`
	Fecha        time.Time  `gorm:"not null"`
	UsuarioID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (HistorialEstado) TableName() string { return "historial_estados" }
