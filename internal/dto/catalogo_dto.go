package dto

import "github.com/shopspring/decimal"

// Catalog CRUD shares one request/response shape across all eight catalog
// types; fields that do not apply to a given type are rejected by the service
// (Precio on portion-priced components, Porciones outside mini tortas).

type CrearComponenteRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2"`
	Descripcion *string `json:"descripcion"`
	ImagenURL   *string `json:"imagen_url" validate:"omitempty,url"`
	// Precio applies to flat-priced types only (elementos, extras, mini
	// tortas, postres, otros productos).
	Precio    *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	Porciones *int             `json:"porciones" validate:"omitempty,min=1"`
}

type ActualizarComponenteRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=2"`
	Descripcion *string          `json:"descripcion"`
	ImagenURL   *string          `json:"imagen_url" validate:"omitempty,url"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	Porciones   *int             `json:"porciones" validate:"omitempty,min=1"`
	Activo      *bool            `json:"activo"`
}

type ComponenteResponse struct {
	ID          string           `json:"id"`
	Tipo        string           `json:"tipo"`
	Nombre      string           `json:"nombre"`
	Descripcion *string          `json:"descripcion,omitempty"`
	ImagenURL   *string          `json:"imagen_url,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	Porciones   *int             `json:"porciones,omitempty"`
	Activo      bool             `json:"activo"`
}

// ── Portion price sub-resource ───────────────────────────────────────────────

type CrearPrecioPorcionRequest struct {
	Porciones int             `json:"porciones" validate:"required,min=1"`
	Precio    decimal.Decimal `json:"precio" validate:"required,min=0"`
}

type ActualizarPrecioPorcionRequest struct {
	Porciones *int             `json:"porciones" validate:"omitempty,min=1"`
	Precio    *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
}

type PrecioPorcionResponse struct {
	ID        string          `json:"id"`
	Porciones int             `json:"porciones"`
	Precio    decimal.Decimal `json:"precio"`
}
