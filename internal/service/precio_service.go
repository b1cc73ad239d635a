package service

import (
	"context"
	"errors"
	"fmt"

	"pasteleria/internal/apierror"
	"pasteleria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioService resolves the price of a portion-priced component by exact
// portion count. There is no interpolation or nearest-match: a missing row
// for the requested portion count is a not-found error.
type PrecioService interface {
	PrecioComponente(ctx context.Context, tx *gorm.DB, tipo string, componenteID uuid.UUID, porciones int) (decimal.Decimal, error)
}

type precioService struct {
	catalogo repository.CatalogoRepository
}

func NewPrecioService(catalogo repository.CatalogoRepository) PrecioService {
	return &precioService{catalogo: catalogo}
}

func (s *precioService) PrecioComponente(ctx context.Context, tx *gorm.DB, tipo string, componenteID uuid.UUID, porciones int) (decimal.Decimal, error) {
	if porciones <= 0 {
		return decimal.Zero, apierror.Validation("porciones debe ser un entero positivo")
	}

	pp, err := s.catalogo.FindPrecioPorcionTx(ctx, tx, tipo, componenteID, porciones)
	if err != nil {
		if errors.Is(err, repository.ErrTipoInvalido) {
			return decimal.Zero, apierror.Validation("tipo de componente no soportado: " + tipo)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apierror.NotFound(fmt.Sprintf(
				"No existe precio para %s %s con %d porciones", tipo, componenteID, porciones))
		}
		return decimal.Zero, err
	}

	// A stored price must be a valid non-negative amount; anything else means
	// the catalog data is corrupt and the whole operation aborts.
	if pp.Precio.IsNegative() {
		return decimal.Zero, apierror.Integrity(fmt.Sprintf(
			"Precio inválido almacenado para %s %s (%d porciones)", tipo, componenteID, porciones))
	}
	return pp.Precio, nil
}
