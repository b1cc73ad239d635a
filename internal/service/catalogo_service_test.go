package service_test

import (
	"context"
	"errors"
	"testing"

	"pasteleria/internal/apierror"
	"pasteleria/internal/dto"
	"pasteleria/internal/model"
	"pasteleria/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCatalogoSvc() (service.CatalogoService, *stubCatalogoRepo, catalogoDemo) {
	catalogo := newStubCatalogoRepo()
	demo := seedCatalogo(catalogo)
	return service.NewCatalogoService(catalogo, nil), catalogo, demo
}

func TestCrearComponente_PrecioDirectoSoloTiposPlanos(t *testing.T) {
	svc, _, _ := buildCatalogoSvc()
	precio := decimal.RequireFromString("10.00")

	// Portion-priced components never carry a direct price.
	_, err := svc.Crear(context.Background(), model.TipoTortaBase, dto.CrearComponenteRequest{
		Nombre: "Bizcochuelo de Limón",
		Precio: &precio,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no admite precio directo")

	resp, err := svc.Crear(context.Background(), model.TipoPostre, dto.CrearComponenteRequest{
		Nombre: "Lemon Pie",
		Precio: &precio,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	require.NotNil(t, resp.Precio)
	assert.Equal(t, "10", resp.Precio.String())
}

func TestCrearComponente_PorcionesSoloMiniTortas(t *testing.T) {
	svc, _, _ := buildCatalogoSvc()

	_, err := svc.Crear(context.Background(), model.TipoPostre, dto.CrearComponenteRequest{
		Nombre:    "Flan",
		Porciones: intPtr(8),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "solo aplica a mini tortas")
}

func TestCrearComponente_TipoDesconocido(t *testing.T) {
	svc, _, _ := buildCatalogoSvc()

	_, err := svc.Crear(context.Background(), "sabor", dto.CrearComponenteRequest{Nombre: "X"})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestEliminarComponente_ReferenciadoPorCotizaciones(t *testing.T) {
	svc, catalogo, demo := buildCatalogoSvc()
	catalogo.referenciados[demo.vainillaID] = true

	err := svc.Eliminar(context.Background(), model.TipoTortaBase, demo.vainillaID)
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)

	// Still active: the delete never went through.
	comp, findErr := catalogo.Find(context.Background(), model.TipoTortaBase, demo.vainillaID)
	require.NoError(t, findErr)
	assert.True(t, comp.Activo)
}

func TestEliminarComponente_DesactivaSinReferencias(t *testing.T) {
	svc, catalogo, demo := buildCatalogoSvc()

	require.NoError(t, svc.Eliminar(context.Background(), model.TipoTortaBase, demo.vainillaID))

	comp, err := catalogo.Find(context.Background(), model.TipoTortaBase, demo.vainillaID)
	require.NoError(t, err)
	assert.False(t, comp.Activo)

	// Deactivated components disappear from the default listing.
	activos, err := svc.Listar(context.Background(), model.TipoTortaBase, false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.Listar(context.Background(), model.TipoTortaBase, true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestCrearPrecio_DuplicadoPorPorciones(t *testing.T) {
	svc, _, demo := buildCatalogoSvc()

	_, err := svc.CrearPrecio(context.Background(), model.TipoTortaBase, demo.vainillaID,
		dto.CrearPrecioPorcionRequest{Porciones: 20, Precio: decimal.RequireFromString("55.00")})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.ErrorContains(t, err, "Ya existe un precio para 20 porciones")
}

func TestCrearPrecio_NuevaCantidadDePorciones(t *testing.T) {
	svc, _, demo := buildCatalogoSvc()

	resp, err := svc.CrearPrecio(context.Background(), model.TipoTortaBase, demo.vainillaID,
		dto.CrearPrecioPorcionRequest{Porciones: 30, Precio: decimal.RequireFromString("70.00")})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Porciones)
	assert.Equal(t, "70", resp.Precio.String())

	precios, err := svc.ListarPrecios(context.Background(), model.TipoTortaBase, demo.vainillaID)
	require.NoError(t, err)
	assert.Len(t, precios, 3)
}

func TestCrearPrecio_TipoSinPorciones(t *testing.T) {
	svc, _, demo := buildCatalogoSvc()

	_, err := svc.CrearPrecio(context.Background(), model.TipoPostre, demo.postreID,
		dto.CrearPrecioPorcionRequest{Porciones: 10, Precio: decimal.RequireFromString("5.00")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no tiene precios por porción")
}

func TestActualizarPrecio_PorcionesDuplicadas(t *testing.T) {
	svc, catalogo, demo := buildCatalogoSvc()

	// vainilla carries rows for 10 and 20 portions; moving the 20-portion row
	// onto 10 collides with the existing pair.
	var precio20 uuid.UUID
	for _, pp := range catalogo.precios[model.TipoTortaBase][demo.vainillaID] {
		if pp.Porciones == 20 {
			precio20 = pp.ID
		}
	}
	require.NotEqual(t, uuid.Nil, precio20)

	_, err := svc.ActualizarPrecio(context.Background(), model.TipoTortaBase, precio20,
		dto.ActualizarPrecioPorcionRequest{Porciones: intPtr(10)})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.ErrorContains(t, err, "Ya existe un precio para 10 porciones")
}

func TestActualizarPrecio_MismasPorcionesNoColisiona(t *testing.T) {
	svc, catalogo, demo := buildCatalogoSvc()

	var precio20 uuid.UUID
	for _, pp := range catalogo.precios[model.TipoTortaBase][demo.vainillaID] {
		if pp.Porciones == 20 {
			precio20 = pp.ID
		}
	}

	nuevo := decimal.RequireFromString("55.00")
	resp, err := svc.ActualizarPrecio(context.Background(), model.TipoTortaBase, precio20,
		dto.ActualizarPrecioPorcionRequest{Precio: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Porciones)
	assert.Equal(t, "55", resp.Precio.String())
}

func TestActualizarPrecio_NoExiste(t *testing.T) {
	svc, _, _ := buildCatalogoSvc()

	_, err := svc.ActualizarPrecio(context.Background(), model.TipoTortaBase, uuid.New(),
		dto.ActualizarPrecioPorcionRequest{Porciones: intPtr(10)})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}
