package service_test

import (
	"context"
	"errors"
	"testing"

	"pasteleria/internal/apierror"
	"pasteleria/internal/dto"
	"pasteleria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearDetalleTorta_SnapshotsPorPorciones(t *testing.T) {
	f := buildFixtures()

	detalle, total, err := f.tortaSvc.CrearDetalleTx(context.Background(), nil, uuid.New(), dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		CoberturaID: strPtr(f.demo.fondantID.String()),
		Porciones:   20,
	})
	require.NoError(t, err)

	// base 50 + cobertura 30 at 20 portions
	assert.Equal(t, "80", total.String())
	require.NotNil(t, detalle.PrecioBase)
	assert.Equal(t, "50", detalle.PrecioBase.String())
	require.NotNil(t, detalle.PrecioCobertura)
	assert.Equal(t, "30", detalle.PrecioCobertura.String())
	assert.Nil(t, detalle.DecoracionID)
	assert.Nil(t, detalle.PrecioDecoracion)
}

func TestCrearDetalleTorta_ConElementosYExtras(t *testing.T) {
	f := buildFixtures()

	_, total, err := f.tortaSvc.CrearDetalleTx(context.Background(), nil, uuid.New(), dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		CoberturaID: strPtr(f.demo.fondantID.String()),
		Porciones:   20,
		Elementos: []dto.ElementoTortaRequest{
			{ElementoDecorativoID: f.demo.perlasID.String(), Cantidad: 5},
		},
		Extras: []dto.ExtraTortaRequest{
			{ExtraID: f.demo.velasID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)

	// 80 + 5×2 pearls + 1×5 candles
	assert.Equal(t, "95", total.String())
}

func TestCrearDetalleTorta_DecoracionAdicionalPorPorciones(t *testing.T) {
	f := buildFixtures()

	// The additional decoration resolves from its portion table at the cake's
	// portion count, not from a flat price.
	_, total, err := f.tortaSvc.CrearDetalleTx(context.Background(), nil, uuid.New(), dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		Porciones:   20,
		DecoracionesAdicionales: []dto.DecoracionTortaRequest{
			{DecoracionID: f.demo.floresID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "70", total.String()) // 50 + 20
}

func TestCrearDetalleTorta_SinPrecioParaPorciones(t *testing.T) {
	f := buildFixtures()

	// No row for 15 portions: the whole build aborts, nothing is half-created.
	_, _, err := f.tortaSvc.CrearDetalleTx(context.Background(), nil, uuid.New(), dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		Porciones:   15,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "No existe precio")
	assert.Empty(t, f.detalles.detalles)
}

func TestCrearDetalleTorta_ElementoSinPrecio(t *testing.T) {
	f := buildFixtures()
	rotoID := f.catalogo.seedComponente(model.TipoElementoDecorativo, "Elemento Roto", nil)

	_, _, err := f.tortaSvc.CrearDetalleTx(context.Background(), nil, uuid.New(), dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		Porciones:   20,
		Elementos: []dto.ElementoTortaRequest{
			{ElementoDecorativoID: rotoID.String(), Cantidad: 1},
		},
	})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindIntegrity, apiErr.Kind)
	assert.ErrorContains(t, err, "no tiene un precio unitario válido")
}

func TestTotalTorta_SnapshotAusenteSeTomaComoCero(t *testing.T) {
	f := buildFixtures()

	// A stored cake whose base snapshot was never written: the aggregate
	// coerces it to zero instead of failing the read.
	cobertura := decimal.RequireFromString("30.00")
	detalle := &model.DetalleTorta{
		ItemCotizacionID: uuid.New(),
		TortaBaseID:      &f.demo.vainillaID,
		CoberturaID:      &f.demo.fondantID,
		Porciones:        20,
		PrecioBase:       nil,
		PrecioCobertura:  &cobertura,
	}
	require.NoError(t, f.detalles.CreateTx(context.Background(), nil, detalle))

	total, err := f.tortaSvc.TotalTortaTx(context.Background(), nil, detalle.ID)
	require.NoError(t, err)
	assert.Equal(t, "30", total.String())
}

func TestActualizarDetalle_RepreciaItemYCotizacion(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     2,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					CoberturaID: strPtr(f.demo.fondantID.String()),
					Porciones:   20,
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "160", resp.Total.String()) // 80 × 2

	detalleID := uuid.MustParse(*resp.Items[0].ProductoID)

	// Shrink the cake to 10 portions: 30 + 18 = 48 unit price.
	updated, err := f.tortaSvc.Actualizar(context.Background(), detalleID, dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		CoberturaID: strPtr(f.demo.fondantID.String()),
		Porciones:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Porciones)
	assert.Equal(t, "48", updated.PrecioTotal.String())

	refreshed, err := f.cotizacionSvc.Obtener(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "48", refreshed.Items[0].PrecioUnitario.String())
	assert.Equal(t, "96", refreshed.Items[0].PrecioTotal.String())
	assert.Equal(t, "96", refreshed.Total.String())
}

func TestActualizarDetalle_ReconciliacionDeElementos(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     1,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					Porciones:   20,
					Elementos: []dto.ElementoTortaRequest{
						{ElementoDecorativoID: f.demo.perlasID.String(), Cantidad: 5},
					},
					Extras: []dto.ExtraTortaRequest{
						{ExtraID: f.demo.velasID.String(), Cantidad: 1},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "65", resp.Total.String()) // 50 + 10 + 5

	detalleID := uuid.MustParse(*resp.Items[0].ProductoID)
	require.Len(t, f.detalles.elementos, 1)
	linkID := f.detalles.elementos[0].ID.String()

	// Keep the element link with a new quantity; the extra is absent from the
	// request and must be deleted.
	updated, err := f.tortaSvc.Actualizar(context.Background(), detalleID, dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		Porciones:   20,
		Elementos: []dto.ElementoTortaRequest{
			{ID: &linkID, ElementoDecorativoID: f.demo.perlasID.String(), Cantidad: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "54", updated.PrecioTotal.String()) // 50 + 2×2
	require.Len(t, updated.Elementos, 1)
	assert.Equal(t, linkID, updated.Elementos[0].ID)
	assert.Equal(t, 2, updated.Elementos[0].Cantidad)
	assert.Empty(t, updated.Extras)
	assert.Empty(t, f.detalles.extras)
}

func TestActualizarDetalle_LinkDesconocido(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     1,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					Porciones:   20,
				},
			},
		},
	})
	require.NoError(t, err)
	detalleID := uuid.MustParse(*resp.Items[0].ProductoID)

	ajeno := uuid.New().String()
	_, err = f.tortaSvc.Actualizar(context.Background(), detalleID, dto.TortaSpec{
		TortaBaseID: strPtr(f.demo.vainillaID.String()),
		Porciones:   20,
		Elementos: []dto.ElementoTortaRequest{
			{ID: &ajeno, ElementoDecorativoID: f.demo.perlasID.String(), Cantidad: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no encontrado en este detalle")
}

func TestEliminarDetalle_DesvinculaItem(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     1,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					CoberturaID: strPtr(f.demo.fondantID.String()),
					Porciones:   20,
				},
			},
			{
				TipoProducto: model.TipoProductoPostre,
				ProductoID:   strPtr(f.demo.postreID.String()),
				Cantidad:     1,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "95", resp.Total.String()) // 80 + 15

	detalleID := uuid.MustParse(*resp.Items[0].ProductoID)
	require.NoError(t, f.tortaSvc.Eliminar(context.Background(), detalleID))

	// The item survives as a zero-priced tombstone; the quote keeps its line.
	refreshed, err := f.cotizacionSvc.Obtener(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, refreshed.Items, 2)
	assert.Equal(t, "Torta Eliminada", refreshed.Items[0].NombreProducto)
	assert.Nil(t, refreshed.Items[0].ProductoID)
	assert.Equal(t, "0", refreshed.Items[0].PrecioUnitario.String())
	assert.Equal(t, "15", refreshed.Total.String())
	assert.Empty(t, f.detalles.detalles)
}

func TestCrearDetalle_AdjuntaTortaAItemSinTorta(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     2,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					CoberturaID: strPtr(f.demo.fondantID.String()),
					Porciones:   20,
				},
			},
			{
				TipoProducto: model.TipoProductoPostre,
				ProductoID:   strPtr(f.demo.postreID.String()),
				Cantidad:     1,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "175", resp.Total.String()) // 80×2 + 15

	itemID := resp.Items[0].ID
	require.NoError(t, f.tortaSvc.Eliminar(context.Background(), uuid.MustParse(*resp.Items[0].ProductoID)))

	// The bare item left behind by the deletion takes a fresh cake.
	nuevo, err := f.tortaSvc.Crear(context.Background(), dto.CrearDetalleTortaRequest{
		ItemCotizacionID: itemID,
		TortaSpec: dto.TortaSpec{
			TortaBaseID: strPtr(f.demo.vainillaID.String()),
			Porciones:   10,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, itemID, nuevo.ItemCotizacionID)
	assert.Equal(t, "30", nuevo.PrecioTotal.String())

	refreshed, err := f.cotizacionSvc.Obtener(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "30", refreshed.Items[0].PrecioUnitario.String())
	assert.Equal(t, "60", refreshed.Items[0].PrecioTotal.String())
	assert.Equal(t, "75", refreshed.Total.String())
}

func TestCrearDetalle_ItemYaTieneTorta(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoTorta,
				Cantidad:     1,
				Torta: &dto.TortaSpec{
					TortaBaseID: strPtr(f.demo.vainillaID.String()),
					Porciones:   20,
				},
			},
		},
	})
	require.NoError(t, err)

	_, err = f.tortaSvc.Crear(context.Background(), dto.CrearDetalleTortaRequest{
		ItemCotizacionID: resp.Items[0].ID,
		TortaSpec: dto.TortaSpec{
			TortaBaseID: strPtr(f.demo.vainillaID.String()),
			Porciones:   10,
		},
	})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.ErrorContains(t, err, "ya tiene una torta")
}

func TestCrearDetalle_ItemNoEsTorta(t *testing.T) {
	f := buildFixtures()

	resp, err := f.cotizacionSvc.Crear(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: f.clienteID.String(),
		Items: []dto.ItemCotizacionRequest{
			{
				TipoProducto: model.TipoProductoPostre,
				ProductoID:   strPtr(f.demo.postreID.String()),
				Cantidad:     1,
			},
		},
	})
	require.NoError(t, err)

	_, err = f.tortaSvc.Crear(context.Background(), dto.CrearDetalleTortaRequest{
		ItemCotizacionID: resp.Items[0].ID,
		TortaSpec: dto.TortaSpec{
			TortaBaseID: strPtr(f.demo.vainillaID.String()),
			Porciones:   10,
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "solo los items de tipo torta")
}

func TestCrearDetalle_ItemNoExiste(t *testing.T) {
	f := buildFixtures()

	_, err := f.tortaSvc.Crear(context.Background(), dto.CrearDetalleTortaRequest{
		ItemCotizacionID: uuid.New().String(),
		TortaSpec: dto.TortaSpec{
			TortaBaseID: strPtr(f.demo.vainillaID.String()),
			Porciones:   10,
		},
	})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}

func TestObtenerDetalle_NoExiste(t *testing.T) {
	f := buildFixtures()

	_, err := f.tortaSvc.Obtener(context.Background(), uuid.New())
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}
