package service

import (
	"context"
	"errors"
	"fmt"

	"pasteleria/internal/apierror"
	"pasteleria/internal/dto"
	"pasteleria/internal/model"
	"pasteleria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TortaService builds and maintains custom cake compositions. CrearDetalleTx
// and TotalTortaTx run inside a caller-owned transaction because cakes are
// always created as part of a quote mutation; Actualizar and Eliminar open
// their own transaction and reprice the owning item and quote.
type TortaService interface {
	CrearDetalleTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, spec dto.TortaSpec) (*model.DetalleTorta, decimal.Decimal, error)
	ActualizarDetalleTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID, spec dto.TortaSpec) (*model.DetalleTorta, decimal.Decimal, error)
	TotalTortaTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID) (decimal.Decimal, error)
	Crear(ctx context.Context, req dto.CrearDetalleTortaRequest) (*dto.DetalleTortaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.DetalleTortaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, spec dto.TortaSpec) (*dto.DetalleTortaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type tortaService struct {
	detalleRepo    repository.DetalleTortaRepository
	cotizacionRepo repository.CotizacionRepository
	catalogo       repository.CatalogoRepository
	precios        PrecioService
}

func NewTortaService(
	detalleRepo repository.DetalleTortaRepository,
	cotizacionRepo repository.CotizacionRepository,
	catalogo repository.CatalogoRepository,
	precios PrecioService,
) TortaService {
	return &tortaService{
		detalleRepo:    detalleRepo,
		cotizacionRepo: cotizacionRepo,
		catalogo:       catalogo,
		precios:        precios,
	}
}

// notFoundOr converts a gorm record-not-found into a typed 404 and passes
// every other error through untouched.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg)
	}
	return err
}

// ── CrearDetalleTx ───────────────────────────────────────────────────────────
// Builds a cake inside the caller's transaction:
//   1. Resolve up to three component price snapshots at the cake's portions
//   2. Persist the DetalleTorta
//   3. Attach elements and extras at their flat unit price (hard failure when
//      the catalog price is missing or negative)
//   4. Attach additional decorations priced at the cake's portion count
//   5. Return the cake and its unit price

func (s *tortaService) CrearDetalleTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, spec dto.TortaSpec) (*model.DetalleTorta, decimal.Decimal, error) {
	if spec.Porciones <= 0 {
		return nil, decimal.Zero, apierror.Validation("porciones debe ser un entero positivo")
	}

	tortaBaseID, precioBase, err := s.resolverComponenteTx(ctx, tx, model.TipoTortaBase, spec.TortaBaseID, spec.Porciones, "Torta base no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}
	coberturaID, precioCobertura, err := s.resolverComponenteTx(ctx, tx, model.TipoCobertura, spec.CoberturaID, spec.Porciones, "Cobertura no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}
	decoracionID, precioDecoracion, err := s.resolverComponenteTx(ctx, tx, model.TipoDecoracion, spec.DecoracionID, spec.Porciones, "Decoración no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}

	detalle := &model.DetalleTorta{
		ItemCotizacionID: itemID,
		TortaBaseID:      tortaBaseID,
		CoberturaID:      coberturaID,
		DecoracionID:     decoracionID,
		Porciones:        spec.Porciones,
		PrecioBase:       precioBase,
		PrecioCobertura:  precioCobertura,
		PrecioDecoracion: precioDecoracion,
		ImagenURL:        spec.ImagenURL,
	}
	if err := s.detalleRepo.CreateTx(ctx, tx, detalle); err != nil {
		return nil, decimal.Zero, err
	}

	for _, req := range spec.Elementos {
		link, err := s.nuevoElementoTx(ctx, tx, detalle.ID, req)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if err := s.detalleRepo.CreateElementoTx(ctx, tx, link); err != nil {
			return nil, decimal.Zero, err
		}
		detalle.Elementos = append(detalle.Elementos, *link)
	}
	for _, req := range spec.Extras {
		link, err := s.nuevoExtraTx(ctx, tx, detalle.ID, req)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if err := s.detalleRepo.CreateExtraTx(ctx, tx, link); err != nil {
			return nil, decimal.Zero, err
		}
		detalle.Extras = append(detalle.Extras, *link)
	}
	for _, req := range spec.DecoracionesAdicionales {
		link, err := s.nuevaDecoracionTx(ctx, tx, detalle.ID, spec.Porciones, req)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if err := s.detalleRepo.CreateDecoracionTx(ctx, tx, link); err != nil {
			return nil, decimal.Zero, err
		}
		detalle.DecoracionesAdicionales = append(detalle.DecoracionesAdicionales, *link)
	}

	return detalle, totalDetalle(detalle, false), nil
}

// resolverComponenteTx validates an optional component reference and captures
// its portion price snapshot. Absent component → nil ID and nil snapshot.
func (s *tortaService) resolverComponenteTx(ctx context.Context, tx *gorm.DB, tipo string, idStr *string, porciones int, notFoundMsg string) (*uuid.UUID, *decimal.Decimal, error) {
	if idStr == nil {
		return nil, nil, nil
	}
	cid, err := uuid.Parse(*idStr)
	if err != nil {
		return nil, nil, apierror.Validation("ID de componente inválido: " + *idStr)
	}
	if _, err := s.catalogo.FindTx(ctx, tx, tipo, cid); err != nil {
		return nil, nil, notFoundOr(err, notFoundMsg)
	}
	precio, err := s.precios.PrecioComponente(ctx, tx, tipo, cid, porciones)
	if err != nil {
		return nil, nil, err
	}
	return &cid, &precio, nil
}

func (s *tortaService) nuevoElementoTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID, req dto.ElementoTortaRequest) (*model.ElementoPorTorta, error) {
	eid, err := uuid.Parse(req.ElementoDecorativoID)
	if err != nil {
		return nil, apierror.Validation("elemento_decorativo_id inválido")
	}
	comp, err := s.catalogo.FindTx(ctx, tx, model.TipoElementoDecorativo, eid)
	if err != nil {
		return nil, notFoundOr(err, "Elemento decorativo no encontrado")
	}
	if comp.Precio == nil || comp.Precio.IsNegative() {
		return nil, apierror.Integrity(fmt.Sprintf(
			"El elemento decorativo '%s' no tiene un precio unitario válido", comp.Nombre))
	}
	cantidad := decimal.NewFromInt(int64(req.Cantidad))
	return &model.ElementoPorTorta{
		DetalleTortaID:       detalleID,
		ElementoDecorativoID: eid,
		Cantidad:             req.Cantidad,
		PrecioUnitario:       *comp.Precio,
		PrecioTotal:          comp.Precio.Mul(cantidad),
	}, nil
}

func (s *tortaService) nuevoExtraTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID, req dto.ExtraTortaRequest) (*model.ExtraPorTorta, error) {
	xid, err := uuid.Parse(req.ExtraID)
	if err != nil {
		return nil, apierror.Validation("extra_id inválido")
	}
	comp, err := s.catalogo.FindTx(ctx, tx, model.TipoExtra, xid)
	if err != nil {
		return nil, notFoundOr(err, "Extra no encontrado")
	}
	if comp.Precio == nil || comp.Precio.IsNegative() {
		return nil, apierror.Integrity(fmt.Sprintf(
			"El extra '%s' no tiene un precio unitario válido", comp.Nombre))
	}
	cantidad := decimal.NewFromInt(int64(req.Cantidad))
	return &model.ExtraPorTorta{
		DetalleTortaID: detalleID,
		ExtraID:        xid,
		Cantidad:       req.Cantidad,
		PrecioUnitario: *comp.Precio,
		PrecioTotal:    comp.Precio.Mul(cantidad),
	}, nil
}

// nuevaDecoracionTx prices an additional decoration from its portion table at
// the cake's portion count, unlike flat-priced elements and extras.
func (s *tortaService) nuevaDecoracionTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID, porciones int, req dto.DecoracionTortaRequest) (*model.DecoracionPorTorta, error) {
	did, err := uuid.Parse(req.DecoracionID)
	if err != nil {
		return nil, apierror.Validation("decoracion_id inválido")
	}
	if _, err := s.catalogo.FindTx(ctx, tx, model.TipoDecoracion, did); err != nil {
		return nil, notFoundOr(err, "Decoración no encontrada")
	}
	precio, err := s.precios.PrecioComponente(ctx, tx, model.TipoDecoracion, did, porciones)
	if err != nil {
		return nil, err
	}
	cantidad := decimal.NewFromInt(int64(req.Cantidad))
	return &model.DecoracionPorTorta{
		DetalleTortaID: detalleID,
		DecoracionID:   did,
		Cantidad:       req.Cantidad,
		PrecioUnitario: precio,
		PrecioTotal:    precio.Mul(cantidad),
	}, nil
}

// ── Totals ───────────────────────────────────────────────────────────────────

func (s *tortaService) TotalTortaTx(ctx context.Context, tx *gorm.DB, detalleID uuid.UUID) (decimal.Decimal, error) {
	detalle, err := s.detalleRepo.FindByIDTx(ctx, tx, detalleID)
	if err != nil {
		return decimal.Zero, notFoundOr(err, "Detalle de torta no encontrado")
	}
	return totalDetalle(detalle, true), nil
}

// totalDetalle sums the unit price of a cake: component snapshots plus all
// link row totals. A missing snapshot for a present component counts as zero;
// aggregation never fails on bad snapshots, it only logs them.
func totalDetalle(d *model.DetalleTorta, logCoerced bool) decimal.Decimal {
	total := decimal.Zero
	snapshots := []struct {
		campo      string
		componente *uuid.UUID
		precio     *decimal.Decimal
	}{
		{"precio_base", d.TortaBaseID, d.PrecioBase},
		{"precio_cobertura", d.CoberturaID, d.PrecioCobertura},
		{"precio_decoracion", d.DecoracionID, d.PrecioDecoracion},
	}
	for _, snap := range snapshots {
		if snap.precio == nil {
			if logCoerced && snap.componente != nil {
				log.Warn().
					Str("detalle_torta_id", d.ID.String()).
					Str("campo", snap.campo).
					Msg("snapshot de precio ausente, se toma como cero")
			}
			continue
		}
		total = total.Add(*snap.precio)
	}
	for _, link := range d.Elementos {
		total = total.Add(link.PrecioTotal)
	}
	for _, link := range d.Extras {
		total = total.Add(link.PrecioTotal)
	}
	for _, link := range d.DecoracionesAdicionales {
		total = total.Add(link.PrecioTotal)
	}
	return total
}

// ── Standalone cake detail endpoints ─────────────────────────────────────────

// Crear attaches a new cake to an existing quote item that has none, such as
// an item left bare by a previous cake deletion, then reprices the item and
// its quote in the same transaction.
func (s *tortaService) Crear(ctx context.Context, req dto.CrearDetalleTortaRequest) (*dto.DetalleTortaResponse, error) {
	itemID, err := uuid.Parse(req.ItemCotizacionID)
	if err != nil {
		return nil, apierror.Validation("id_item_cotizacion inválido")
	}

	var resp *dto.DetalleTortaResponse
	txErr := runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		item, err := s.cotizacionRepo.FindItemByIDTx(ctx, tx, itemID)
		if err != nil {
			return notFoundOr(err, "Item de cotización no encontrado")
		}
		if item.TipoProducto != model.TipoProductoTorta {
			return apierror.Validation("solo los items de tipo torta aceptan una especificación de torta")
		}
		if item.ProductoID != nil {
			return apierror.Conflict("El item ya tiene una torta asociada")
		}

		detalle, total, err := s.CrearDetalleTx(ctx, tx, item.ID, req.TortaSpec)
		if err != nil {
			return err
		}

		item.ProductoID = &detalle.ID
		item.PrecioUnitario = total
		item.PrecioTotal = total.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		if err := s.cotizacionRepo.UpdateItemTx(ctx, tx, item); err != nil {
			return err
		}
		if err := recalcularTotalCotizacionTx(ctx, tx, s.cotizacionRepo, item.CotizacionID); err != nil {
			return err
		}

		resp = detalleToResponse(detalle)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *tortaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.DetalleTortaResponse, error) {
	detalle, err := s.detalleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Detalle de torta no encontrado")
	}
	return detalleToResponse(detalle), nil
}

// Actualizar rebuilds the cake from the new spec: snapshots are re-resolved,
// each attachment collection is reconciled against the request by link ID
// (update matched, insert id-less, delete absent), and the owning item and
// quote total are repriced, all in one transaction.
func (s *tortaService) Actualizar(ctx context.Context, id uuid.UUID, spec dto.TortaSpec) (*dto.DetalleTortaResponse, error) {
	var resp *dto.DetalleTortaResponse
	txErr := runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		fresh, total, err := s.ActualizarDetalleTx(ctx, tx, id, spec)
		if err != nil {
			return err
		}

		item, err := s.cotizacionRepo.FindItemByIDTx(ctx, tx, fresh.ItemCotizacionID)
		if err != nil {
			return err
		}
		item.PrecioUnitario = total
		item.PrecioTotal = total.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		if err := s.cotizacionRepo.UpdateItemTx(ctx, tx, item); err != nil {
			return err
		}
		if err := recalcularTotalCotizacionTx(ctx, tx, s.cotizacionRepo, item.CotizacionID); err != nil {
			return err
		}

		resp = detalleToResponse(fresh)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// ActualizarDetalleTx rebuilds a cake inside the caller's transaction and
// returns the reloaded cake with its new unit price. Callers own the item
// and quote repricing that must follow.
func (s *tortaService) ActualizarDetalleTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, spec dto.TortaSpec) (*model.DetalleTorta, decimal.Decimal, error) {
	if spec.Porciones <= 0 {
		return nil, decimal.Zero, apierror.Validation("porciones debe ser un entero positivo")
	}
	detalle, err := s.detalleRepo.FindByIDTx(ctx, tx, id)
	if err != nil {
		return nil, decimal.Zero, notFoundOr(err, "Detalle de torta no encontrado")
	}

	tortaBaseID, precioBase, err := s.resolverComponenteTx(ctx, tx, model.TipoTortaBase, spec.TortaBaseID, spec.Porciones, "Torta base no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}
	coberturaID, precioCobertura, err := s.resolverComponenteTx(ctx, tx, model.TipoCobertura, spec.CoberturaID, spec.Porciones, "Cobertura no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}
	decoracionID, precioDecoracion, err := s.resolverComponenteTx(ctx, tx, model.TipoDecoracion, spec.DecoracionID, spec.Porciones, "Decoración no encontrada")
	if err != nil {
		return nil, decimal.Zero, err
	}

	detalle.TortaBaseID = tortaBaseID
	detalle.CoberturaID = coberturaID
	detalle.DecoracionID = decoracionID
	detalle.Porciones = spec.Porciones
	detalle.PrecioBase = precioBase
	detalle.PrecioCobertura = precioCobertura
	detalle.PrecioDecoracion = precioDecoracion
	if spec.ImagenURL != nil {
		detalle.ImagenURL = spec.ImagenURL
	}
	if err := s.detalleRepo.UpdateTx(ctx, tx, detalle); err != nil {
		return nil, decimal.Zero, err
	}

	if err := s.reconciliarElementosTx(ctx, tx, detalle, spec.Elementos); err != nil {
		return nil, decimal.Zero, err
	}
	if err := s.reconciliarExtrasTx(ctx, tx, detalle, spec.Extras); err != nil {
		return nil, decimal.Zero, err
	}
	if err := s.reconciliarDecoracionesTx(ctx, tx, detalle, spec.Porciones, spec.DecoracionesAdicionales); err != nil {
		return nil, decimal.Zero, err
	}

	fresh, err := s.detalleRepo.FindByIDTx(ctx, tx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return fresh, totalDetalle(fresh, true), nil
}

func (s *tortaService) reconciliarElementosTx(ctx context.Context, tx *gorm.DB, detalle *model.DetalleTorta, reqs []dto.ElementoTortaRequest) error {
	existentes := make(map[uuid.UUID]bool, len(detalle.Elementos))
	for _, link := range detalle.Elementos {
		existentes[link.ID] = true
	}
	vistos := make(map[uuid.UUID]bool, len(reqs))

	for _, req := range reqs {
		link, err := s.nuevoElementoTx(ctx, tx, detalle.ID, req)
		if err != nil {
			return err
		}
		if req.ID == nil {
			if err := s.detalleRepo.CreateElementoTx(ctx, tx, link); err != nil {
				return err
			}
			continue
		}
		linkID, err := uuid.Parse(*req.ID)
		if err != nil {
			return apierror.Validation("ID de elemento de torta inválido")
		}
		if !existentes[linkID] {
			return apierror.NotFound("Elemento de torta no encontrado en este detalle")
		}
		vistos[linkID] = true
		link.ID = linkID
		if err := s.detalleRepo.UpdateElementoTx(ctx, tx, link); err != nil {
			return err
		}
	}

	for _, link := range detalle.Elementos {
		if !vistos[link.ID] {
			if err := s.detalleRepo.DeleteElementoTx(ctx, tx, link.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *tortaService) reconciliarExtrasTx(ctx context.Context, tx *gorm.DB, detalle *model.DetalleTorta, reqs []dto.ExtraTortaRequest) error {
	existentes := make(map[uuid.UUID]bool, len(detalle.Extras))
	for _, link := range detalle.Extras {
		existentes[link.ID] = true
	}
	vistos := make(map[uuid.UUID]bool, len(reqs))

	for _, req := range reqs {
		link, err := s.nuevoExtraTx(ctx, tx, detalle.ID, req)
		if err != nil {
			return err
		}
		if req.ID == nil {
			if err := s.detalleRepo.CreateExtraTx(ctx, tx, link); err != nil {
				return err
			}
			continue
		}
		linkID, err := uuid.Parse(*req.ID)
		if err != nil {
			return apierror.Validation("ID de extra de torta inválido")
		}
		if !existentes[linkID] {
			return apierror.NotFound("Extra de torta no encontrado en este detalle")
		}
		vistos[linkID] = true
		link.ID = linkID
		if err := s.detalleRepo.UpdateExtraTx(ctx, tx, link); err != nil {
			return err
		}
	}

	for _, link := range detalle.Extras {
		if !vistos[link.ID] {
			if err := s.detalleRepo.DeleteExtraTx(ctx, tx, link.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *tortaService) reconciliarDecoracionesTx(ctx context.Context, tx *gorm.DB, detalle *model.DetalleTorta, porciones int, reqs []dto.DecoracionTortaRequest) error {
	existentes := make(map[uuid.UUID]bool, len(detalle.DecoracionesAdicionales))
	for _, link := range detalle.DecoracionesAdicionales {
		existentes[link.ID] = true
	}
	vistos := make(map[uuid.UUID]bool, len(reqs))

	for _, req := range reqs {
		link, err := s.nuevaDecoracionTx(ctx, tx, detalle.ID, porciones, req)
		if err != nil {
			return err
		}
		if req.ID == nil {
			if err := s.detalleRepo.CreateDecoracionTx(ctx, tx, link); err != nil {
				return err
			}
			continue
		}
		linkID, err := uuid.Parse(*req.ID)
		if err != nil {
			return apierror.Validation("ID de decoración de torta inválido")
		}
		if !existentes[linkID] {
			return apierror.NotFound("Decoración adicional no encontrada en este detalle")
		}
		vistos[linkID] = true
		link.ID = linkID
		if err := s.detalleRepo.UpdateDecoracionTx(ctx, tx, link); err != nil {
			return err
		}
	}

	for _, link := range detalle.DecoracionesAdicionales {
		if !vistos[link.ID] {
			if err := s.detalleRepo.DeleteDecoracionTx(ctx, tx, link.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Eliminar removes a cake detail and detaches it from its quote item: the
// item survives with a zero price and a tombstone name so the quote keeps
// its line history, then the quote total is recomputed.
func (s *tortaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		detalle, err := s.detalleRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "Detalle de torta no encontrado")
		}
		item, err := s.cotizacionRepo.FindItemByIDTx(ctx, tx, detalle.ItemCotizacionID)
		if err != nil {
			return notFoundOr(err, "Item de cotización no encontrado")
		}

		if err := s.detalleRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		item.ProductoID = nil
		item.NombreProducto = "Torta Eliminada"
		item.PrecioUnitario = decimal.Zero
		item.PrecioTotal = decimal.Zero
		if err := s.cotizacionRepo.UpdateItemTx(ctx, tx, item); err != nil {
			return err
		}
		return recalcularTotalCotizacionTx(ctx, tx, s.cotizacionRepo, item.CotizacionID)
	})
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func detalleToResponse(d *model.DetalleTorta) *dto.DetalleTortaResponse {
	resp := &dto.DetalleTortaResponse{
		ID:               d.ID.String(),
		ItemCotizacionID: d.ItemCotizacionID.String(),
		TortaBaseID:      uuidPtrToString(d.TortaBaseID),
		CoberturaID:      uuidPtrToString(d.CoberturaID),
		DecoracionID:     uuidPtrToString(d.DecoracionID),
		Porciones:        d.Porciones,
		PrecioBase:       d.PrecioBase,
		PrecioCobertura:  d.PrecioCobertura,
		PrecioDecoracion: d.PrecioDecoracion,
		ImagenURL:        d.ImagenURL,
		Elementos:        make([]dto.ElementoTortaResponse, 0, len(d.Elementos)),
		Extras:           make([]dto.ExtraTortaResponse, 0, len(d.Extras)),
		DecoracionesAdicionales: make([]dto.DecoracionTortaResponse, 0, len(d.DecoracionesAdicionales)),
	}
	for _, link := range d.Elementos {
		nombre := ""
		if link.ElementoDecorativo != nil {
			nombre = link.ElementoDecorativo.Nombre
		}
		resp.Elementos = append(resp.Elementos, dto.ElementoTortaResponse{
			ID:                   link.ID.String(),
			ElementoDecorativoID: link.ElementoDecorativoID.String(),
			Nombre:               nombre,
			Cantidad:             link.Cantidad,
			PrecioUnitario:       link.PrecioUnitario,
			PrecioTotal:          link.PrecioTotal,
		})
	}
	for _, link := range d.Extras {
		nombre := ""
		if link.Extra != nil {
			nombre = link.Extra.Nombre
		}
		resp.Extras = append(resp.Extras, dto.ExtraTortaResponse{
			ID:             link.ID.String(),
			ExtraID:        link.ExtraID.String(),
			Nombre:         nombre,
			Cantidad:       link.Cantidad,
			PrecioUnitario: link.PrecioUnitario,
			PrecioTotal:    link.PrecioTotal,
		})
	}
	for _, link := range d.DecoracionesAdicionales {
		nombre := ""
		if link.Decoracion != nil {
			nombre = link.Decoracion.Nombre
		}
		resp.DecoracionesAdicionales = append(resp.DecoracionesAdicionales, dto.DecoracionTortaResponse{
			ID:             link.ID.String(),
			DecoracionID:   link.DecoracionID.String(),
			Nombre:         nombre,
			Cantidad:       link.Cantidad,
			PrecioUnitario: link.PrecioUnitario,
			PrecioTotal:    link.PrecioTotal,
		})
	}
	resp.PrecioTotal = totalDetalle(d, false)
	return resp
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
