package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// ItemCotizacionRequest adds one line to a quote. Exactly one of ProductoID
// (existing product / existing cake) or Torta (inline cake spec, tipo "torta"
// only) identifies what is being quoted.
type ItemCotizacionRequest struct {
	TipoProducto   string     `json:"tipo_producto" validate:"required"`
	ProductoID     *string    `json:"producto_id" validate:"omitempty,uuid"`
	NombreProducto *string    `json:"nombre_producto"`
	Cantidad       int        `json:"cantidad" validate:"required,min=1"`
	Torta          *TortaSpec `json:"torta"`
}

type CrearCotizacionRequest struct {
	ClienteID        string  `json:"cliente_id" validate:"required,uuid"`
	FechaEvento      *string `json:"fecha_evento"` // YYYY-MM-DD
	Observaciones    *string `json:"observaciones"`
	SucursalID       *string `json:"sucursal_id" validate:"omitempty,uuid"`
	UsuarioCreadorID *string `json:"usuario_creador_id" validate:"omitempty,uuid"`

	Items []ItemCotizacionRequest `json:"items" validate:"omitempty,dive"`
}

// ActualizarCotizacionRequest updates quote header fields only; items are
// mutated through the item endpoints.
type ActualizarCotizacionRequest struct {
	ClienteID     *string `json:"cliente_id" validate:"omitempty,uuid"`
	FechaEvento   *string `json:"fecha_evento"`
	Observaciones *string `json:"observaciones"`
	SucursalID    *string `json:"sucursal_id" validate:"omitempty,uuid"`
}

type ActualizarItemRequest struct {
	Cantidad       *int       `json:"cantidad" validate:"omitempty,min=1"`
	NombreProducto *string    `json:"nombre_producto"`
	Torta          *TortaSpec `json:"torta"`
}

type ActualizarEstadoRequest struct {
	Estado    string  `json:"estado" validate:"required"`
	UsuarioID *string `json:"usuario_id" validate:"omitempty,uuid"`
}

// EnviarCotizacionRequest optionally overrides the client's stored email.
type EnviarCotizacionRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

// CotizacionFilter is bound from the query string of GET /v1/cotizaciones.
type CotizacionFilter struct {
	Estado           string `form:"estado"`
	SucursalID       string `form:"sucursal_id"`
	UsuarioCreadorID string `form:"usuario_creador_id"`
	FechaDesde       string `form:"fecha_desde"` // YYYY-MM-DD, inclusive
	FechaHasta       string `form:"fecha_hasta"`
	ClienteNombre    string `form:"cliente_nombre"`
	Page             int    `form:"page,default=1" validate:"min=1"`
	Limit            int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ItemFilter is bound from the query string of GET /v1/items-cotizacion.
type ItemFilter struct {
	CotizacionID   string `form:"cotizacion_id"`
	NombreProducto string `form:"nombre_producto"`
	TipoProducto   string `form:"tipo_producto"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ItemCotizacionResponse struct {
	ID             string                `json:"id"`
	CotizacionID   string                `json:"cotizacion_id"`
	TipoProducto   string                `json:"tipo_producto"`
	ProductoID     *string               `json:"producto_id,omitempty"`
	NombreProducto string                `json:"nombre_producto"`
	Cantidad       int                   `json:"cantidad"`
	PrecioUnitario decimal.Decimal       `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal       `json:"precio_total"`
	DetalleTorta   *DetalleTortaResponse `json:"detalle_torta,omitempty"`
}

type HistorialEstadoResponse struct {
	Estado    string  `json:"estado"`
	Fecha     string  `json:"fecha"`
	UsuarioID *string `json:"usuario_id,omitempty"`
}

type CotizacionResponse struct {
	ID               string                    `json:"id"`
	NumeroCotizacion string                    `json:"numero_cotizacion"`
	ClienteID        string                    `json:"cliente_id"`
	ClienteNombre    string                    `json:"cliente_nombre,omitempty"`
	FechaEvento      *string                   `json:"fecha_evento,omitempty"`
	Observaciones    *string                   `json:"observaciones,omitempty"`
	SucursalID       *string                   `json:"sucursal_id,omitempty"`
	UsuarioCreadorID *string                   `json:"usuario_creador_id,omitempty"`
	Total            decimal.Decimal           `json:"total"`
	Estado           string                    `json:"estado"`
	Items            []ItemCotizacionResponse  `json:"items"`
	Historial        []HistorialEstadoResponse `json:"historial,omitempty"`
	CreatedAt        string                    `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
