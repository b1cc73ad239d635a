package service_test

import (
	"context"
	"errors"
	"testing"

	"pasteleria/internal/apierror"
	"pasteleria/internal/model"
	"pasteleria/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecioComponente_PorcionesExactas(t *testing.T) {
	catalogo := newStubCatalogoRepo()
	demo := seedCatalogo(catalogo)
	svc := service.NewPrecioService(catalogo)

	precio, err := svc.PrecioComponente(context.Background(), nil, model.TipoTortaBase, demo.vainillaID, 20)
	require.NoError(t, err)
	assert.Equal(t, "50", precio.String())

	precio, err = svc.PrecioComponente(context.Background(), nil, model.TipoTortaBase, demo.vainillaID, 10)
	require.NoError(t, err)
	assert.Equal(t, "30", precio.String())
}

func TestPrecioComponente_SinInterpolacion(t *testing.T) {
	catalogo := newStubCatalogoRepo()
	demo := seedCatalogo(catalogo)
	svc := service.NewPrecioService(catalogo)

	// 15 portions sits between two stored rows; there is no nearest match.
	_, err := svc.PrecioComponente(context.Background(), nil, model.TipoTortaBase, demo.vainillaID, 15)
	require.Error(t, err)
	assert.ErrorContains(t, err, "No existe precio")

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}

func TestPrecioComponente_PorcionesInvalidas(t *testing.T) {
	catalogo := newStubCatalogoRepo()
	demo := seedCatalogo(catalogo)
	svc := service.NewPrecioService(catalogo)

	_, err := svc.PrecioComponente(context.Background(), nil, model.TipoTortaBase, demo.vainillaID, 0)
	assert.ErrorContains(t, err, "porciones debe ser un entero positivo")
}

func TestPrecioComponente_TipoNoSoportado(t *testing.T) {
	catalogo := newStubCatalogoRepo()
	seedCatalogo(catalogo)
	svc := service.NewPrecioService(catalogo)

	_, err := svc.PrecioComponente(context.Background(), nil, "sabor", uuid.New(), 10)
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestPrecioComponente_PrecioNegativoAlmacenado(t *testing.T) {
	catalogo := newStubCatalogoRepo()
	demo := seedCatalogo(catalogo)
	catalogo.seedPrecio(model.TipoTortaBase, demo.vainillaID, 40, "-1.00")
	svc := service.NewPrecioService(catalogo)

	_, err := svc.PrecioComponente(context.Background(), nil, model.TipoTortaBase, demo.vainillaID, 40)
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindIntegrity, apiErr.Kind)
}
