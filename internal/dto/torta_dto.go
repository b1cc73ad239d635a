package dto

import "github.com/shopspring/decimal"

// ─── Cake composition requests ───────────────────────────────────────────────

// ElementoTortaRequest attaches a decorative element. On updates, rows carry
// the existing link ID; rows without ID are inserted and links absent from the
// request are deleted.
type ElementoTortaRequest struct {
	ID                   *string `json:"id" validate:"omitempty,uuid"`
	ElementoDecorativoID string  `json:"elemento_decorativo_id" validate:"required,uuid"`
	Cantidad             int     `json:"cantidad" validate:"required,min=1"`
}

type ExtraTortaRequest struct {
	ID       *string `json:"id" validate:"omitempty,uuid"`
	ExtraID  string  `json:"extra_id" validate:"required,uuid"`
	Cantidad int     `json:"cantidad" validate:"required,min=1"`
}

type DecoracionTortaRequest struct {
	ID           *string `json:"id" validate:"omitempty,uuid"`
	DecoracionID string  `json:"decoracion_id" validate:"required,uuid"`
	Cantidad     int     `json:"cantidad" validate:"required,min=1"`
}

// TortaSpec describes a custom cake to build: up to three portion-priced
// components plus attached elements, extras and additional decorations.
type TortaSpec struct {
	TortaBaseID  *string `json:"torta_base_id" validate:"omitempty,uuid"`
	CoberturaID  *string `json:"cobertura_id" validate:"omitempty,uuid"`
	DecoracionID *string `json:"decoracion_id" validate:"omitempty,uuid"`
	Porciones    int     `json:"porciones" validate:"required,min=1"`
	ImagenURL    *string `json:"imagen_url" validate:"omitempty,url"`

	Elementos               []ElementoTortaRequest   `json:"elementos" validate:"omitempty,dive"`
	Extras                  []ExtraTortaRequest      `json:"extras" validate:"omitempty,dive"`
	DecoracionesAdicionales []DecoracionTortaRequest `json:"decoraciones_adicionales" validate:"omitempty,dive"`
}

// CrearDetalleTortaRequest builds a cake for an existing quote item of tipo
// torta that has none yet. The cake spec fields come inlined in the body.
type CrearDetalleTortaRequest struct {
	ItemCotizacionID string `json:"id_item_cotizacion" validate:"required,uuid"`
	TortaSpec
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ElementoTortaResponse struct {
	ID                   string          `json:"id"`
	ElementoDecorativoID string          `json:"elemento_decorativo_id"`
	Nombre               string          `json:"nombre,omitempty"`
	Cantidad             int             `json:"cantidad"`
	PrecioUnitario       decimal.Decimal `json:"precio_unitario"`
	PrecioTotal          decimal.Decimal `json:"precio_total"`
}

type ExtraTortaResponse struct {
	ID             string          `json:"id"`
	ExtraID        string          `json:"extra_id"`
	Nombre         string          `json:"nombre,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
}

type DecoracionTortaResponse struct {
	ID             string          `json:"id"`
	DecoracionID   string          `json:"decoracion_id"`
	Nombre         string          `json:"nombre,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
}

type DetalleTortaResponse struct {
	ID               string           `json:"id"`
	ItemCotizacionID string           `json:"item_cotizacion_id"`
	TortaBaseID      *string          `json:"torta_base_id,omitempty"`
	CoberturaID      *string          `json:"cobertura_id,omitempty"`
	DecoracionID     *string          `json:"decoracion_id,omitempty"`
	Porciones        int              `json:"porciones"`
	PrecioBase       *decimal.Decimal `json:"precio_base,omitempty"`
	PrecioCobertura  *decimal.Decimal `json:"precio_cobertura,omitempty"`
	PrecioDecoracion *decimal.Decimal `json:"precio_decoracion,omitempty"`
	ImagenURL        *string          `json:"imagen_url,omitempty"`

	Elementos               []ElementoTortaResponse   `json:"elementos"`
	Extras                  []ExtraTortaResponse      `json:"extras"`
	DecoracionesAdicionales []DecoracionTortaResponse `json:"decoraciones_adicionales"`

	// PrecioTotal is the unit price of the whole cake (snapshots + links).
	PrecioTotal decimal.Decimal `json:"precio_total"`
}
