package dto

import "github.com/shopspring/decimal"

// ConsultaPrecioResponse is served by the public portion-price check endpoint.
type ConsultaPrecioResponse struct {
	Tipo         string          `json:"tipo"`
	ComponenteID string          `json:"componente_id"`
	Nombre       string          `json:"nombre"`
	Porciones    int             `json:"porciones"`
	Precio       decimal.Decimal `json:"precio"`
}
