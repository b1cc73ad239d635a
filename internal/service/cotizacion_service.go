package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pasteleria/internal/apierror"
	"pasteleria/internal/dto"
	"pasteleria/internal/infra"
	"pasteleria/internal/model"
	"pasteleria/internal/repository"
	"pasteleria/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	Buscar(ctx context.Context, nombreTorta string) ([]dto.CotizacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoRequest) (*dto.CotizacionResponse, error)

	AgregarItem(ctx context.Context, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) (*dto.CotizacionResponse, error)
	ActualizarItem(ctx context.Context, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.CotizacionResponse, error)
	EliminarItem(ctx context.Context, itemID uuid.UUID) (*dto.CotizacionResponse, error)
	ListarItems(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemCotizacionResponse, error)

	GenerarPDF(ctx context.Context, id uuid.UUID) (string, error)
	EnviarPorEmail(ctx context.Context, id uuid.UUID, req dto.EnviarCotizacionRequest) error
}

type cotizacionService struct {
	repo        repository.CotizacionRepository
	detalleRepo repository.DetalleTortaRepository
	clienteRepo repository.ClienteRepository
	catalogo    repository.CatalogoRepository
	tortas      TortaService
	dispatcher  *worker.Dispatcher
	storagePath string
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	detalleRepo repository.DetalleTortaRepository,
	clienteRepo repository.ClienteRepository,
	catalogo repository.CatalogoRepository,
	tortas TortaService,
	dispatcher *worker.Dispatcher,
	storagePath string,
) CotizacionService {
	return &cotizacionService{
		repo:        repo,
		detalleRepo: detalleRepo,
		clienteRepo: clienteRepo,
		catalogo:    catalogo,
		tortas:      tortas,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// recalcularTotalCotizacionTx persists the quote total as the sum of its item
// totals. Runs after every item mutation so the stored total is never stale.
func recalcularTotalCotizacionTx(ctx context.Context, tx *gorm.DB, repo repository.CotizacionRepository, cotizacionID uuid.UUID) error {
	total, err := repo.SumItemsTx(ctx, tx, cotizacionID)
	if err != nil {
		return err
	}
	return repo.UpdateTotalTx(ctx, tx, cotizacionID, total)
}

// ── Crear ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. nextval quote number, formatted COT-NNNNNN
//   2. Create the quote in PENDIENTE with total 0 and its first history row
//   3. Resolve and create each requested item
//   4. Recompute the stored total

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, notFoundOr(err, "Cliente no encontrado")
	}

	fechaEvento, err := parseFechaEvento(req.FechaEvento)
	if err != nil {
		return nil, err
	}
	sucursalID, err := parseUUIDPtr(req.SucursalID, "sucursal_id")
	if err != nil {
		return nil, err
	}
	usuarioID, err := parseUUIDPtr(req.UsuarioCreadorID, "usuario_creador_id")
	if err != nil {
		return nil, err
	}

	var cotizacion model.Cotizacion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextNumeroCotizacion(ctx, tx)
		if err != nil {
			return err
		}

		cotizacion = model.Cotizacion{
			NumeroCotizacion: fmt.Sprintf("COT-%06d", num),
			ClienteID:        clienteID,
			FechaEvento:      fechaEvento,
			Observaciones:    req.Observaciones,
			SucursalID:       sucursalID,
			UsuarioCreadorID: usuarioID,
			Total:            decimal.Zero,
			Estado:           model.EstadoPendiente,
		}
		if err := s.repo.CreateTx(ctx, tx, &cotizacion); err != nil {
			return err
		}

		historial := &model.HistorialEstado{
			CotizacionID: cotizacion.ID,
			Estado:       model.EstadoPendiente,
			Fecha:        time.Now(),
			UsuarioID:    usuarioID,
		}
		if err := s.repo.CreateHistorialTx(ctx, tx, historial); err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := s.agregarItemTx(ctx, tx, cotizacion.ID, item); err != nil {
				return err
			}
		}

		return recalcularTotalCotizacionTx(ctx, tx, s.repo, cotizacion.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, cotizacion.ID)
}

// ── Item resolution ──────────────────────────────────────────────────────────
// agregarItemTx dispatches on tipo_producto:
//   - "torta" with an inline spec: a placeholder item is created first so the
//     cake detail can reference it, then the item is repriced from the built
//     cake.
//   - "torta" with producto_id: references an existing cake detail; the same
//     cake may not appear twice in one quote.
//   - flat products: price comes straight from the catalog row.

func (s *cotizacionService) agregarItemTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) error {
	if req.Cantidad <= 0 {
		return apierror.Validation("cantidad debe ser un entero positivo")
	}

	switch req.TipoProducto {
	case model.TipoProductoTorta:
		if req.Torta != nil {
			return s.agregarTortaInlineTx(ctx, tx, cotizacionID, req)
		}
		if req.ProductoID != nil {
			return s.agregarTortaExistenteTx(ctx, tx, cotizacionID, req)
		}
		return apierror.Validation("un item de tipo torta requiere producto_id o torta")

	case model.TipoProductoMiniTorta, model.TipoProductoPostre, model.TipoProductoOtroProducto:
		return s.agregarProductoTx(ctx, tx, cotizacionID, req)

	default:
		return apierror.Validation("tipo_producto no soportado: " + req.TipoProducto)
	}
}

func (s *cotizacionService) agregarTortaInlineTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) error {
	nombre := "Torta Personalizada"
	if req.NombreProducto != nil && *req.NombreProducto != "" {
		nombre = *req.NombreProducto
	}

	item := &model.ItemCotizacion{
		CotizacionID:   cotizacionID,
		TipoProducto:   model.TipoProductoTorta,
		NombreProducto: nombre,
		Cantidad:       req.Cantidad,
		PrecioUnitario: decimal.Zero,
		PrecioTotal:    decimal.Zero,
	}
	if err := s.repo.CreateItemTx(ctx, tx, item); err != nil {
		return err
	}

	detalle, total, err := s.tortas.CrearDetalleTx(ctx, tx, item.ID, *req.Torta)
	if err != nil {
		return err
	}

	item.ProductoID = &detalle.ID
	item.PrecioUnitario = total
	item.PrecioTotal = total.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	return s.repo.UpdateItemTx(ctx, tx, item)
}

func (s *cotizacionService) agregarTortaExistenteTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) error {
	detalleID, err := uuid.Parse(*req.ProductoID)
	if err != nil {
		return apierror.Validation("producto_id inválido")
	}

	existe, err := s.repo.ExisteItemTortaTx(ctx, tx, cotizacionID, detalleID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflict("La torta ya está agregada a esta cotización")
	}

	total, err := s.tortas.TotalTortaTx(ctx, tx, detalleID)
	if err != nil {
		return err
	}

	nombre := "Torta Personalizada"
	if req.NombreProducto != nil && *req.NombreProducto != "" {
		nombre = *req.NombreProducto
	}

	item := &model.ItemCotizacion{
		CotizacionID:   cotizacionID,
		TipoProducto:   model.TipoProductoTorta,
		ProductoID:     &detalleID,
		NombreProducto: nombre,
		Cantidad:       req.Cantidad,
		PrecioUnitario: total,
		PrecioTotal:    total.Mul(decimal.NewFromInt(int64(req.Cantidad))),
	}
	return s.repo.CreateItemTx(ctx, tx, item)
}

// agregarProductoTx quotes a flat-priced catalog product. Catalog tipo names
// match the item tipo_producto values, so the dispatch value is used directly.
func (s *cotizacionService) agregarProductoTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) error {
	if req.ProductoID == nil {
		return apierror.Validation("producto_id es requerido para tipo " + req.TipoProducto)
	}
	productoID, err := uuid.Parse(*req.ProductoID)
	if err != nil {
		return apierror.Validation("producto_id inválido")
	}

	comp, err := s.catalogo.FindTx(ctx, tx, req.TipoProducto, productoID)
	if err != nil {
		if errors.Is(err, repository.ErrTipoInvalido) {
			return apierror.Validation("tipo_producto no soportado: " + req.TipoProducto)
		}
		return notFoundOr(err, fmt.Sprintf("Producto %s no encontrado", *req.ProductoID))
	}
	if comp.Precio == nil {
		return apierror.Integrity(fmt.Sprintf("El producto '%s' no tiene precio definido", comp.Nombre))
	}

	nombre := comp.Nombre
	if req.NombreProducto != nil && *req.NombreProducto != "" {
		nombre = *req.NombreProducto
	}

	item := &model.ItemCotizacion{
		CotizacionID:   cotizacionID,
		TipoProducto:   req.TipoProducto,
		ProductoID:     &productoID,
		NombreProducto: nombre,
		Cantidad:       req.Cantidad,
		PrecioUnitario: *comp.Precio,
		PrecioTotal:    comp.Precio.Mul(decimal.NewFromInt(int64(req.Cantidad))),
	}
	return s.repo.CreateItemTx(ctx, tx, item)
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cotizacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cotización no encontrada")
	}
	return cotizacionToResponse(cotizacion), nil
}

func (s *cotizacionService) Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado != "" && !model.EsEstadoValido(filter.Estado) {
		return nil, apierror.Validation("estado inválido: " + filter.Estado)
	}

	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		data = append(data, *cotizacionToResponse(&cotizaciones[i]))
	}
	return &dto.CotizacionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *cotizacionService) Buscar(ctx context.Context, nombreTorta string) ([]dto.CotizacionResponse, error) {
	if nombreTorta == "" {
		return nil, apierror.Validation("nombre_torta es requerido")
	}
	cotizaciones, err := s.repo.BuscarPorNombreTorta(ctx, nombreTorta)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		data = append(data, *cotizacionToResponse(&cotizaciones[i]))
	}
	return data, nil
}

func (s *cotizacionService) ListarItems(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemCotizacionResponse, error) {
	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemCotizacionResponse, 0, len(items))
	for i := range items {
		data = append(data, *itemToResponse(&items[i]))
	}
	return data, nil
}

// ── Header update ────────────────────────────────────────────────────────────

func (s *cotizacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error) {
	cotizacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cotización no encontrada")
	}

	if req.ClienteID != nil {
		clienteID, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
			return nil, notFoundOr(err, "Cliente no encontrado")
		}
		cotizacion.ClienteID = clienteID
	}
	if req.FechaEvento != nil {
		fecha, err := parseFechaEvento(req.FechaEvento)
		if err != nil {
			return nil, err
		}
		cotizacion.FechaEvento = fecha
	}
	if req.Observaciones != nil {
		cotizacion.Observaciones = req.Observaciones
	}
	if req.SucursalID != nil {
		sucursalID, err := parseUUIDPtr(req.SucursalID, "sucursal_id")
		if err != nil {
			return nil, err
		}
		cotizacion.SucursalID = sucursalID
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(ctx, tx, cotizacion)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// ── Estado ───────────────────────────────────────────────────────────────────
// Any state may move to any other; validity is membership only. Every change
// appends a history row, even when the new state equals the current one.

func (s *cotizacionService) ActualizarEstado(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoRequest) (*dto.CotizacionResponse, error) {
	if !model.EsEstadoValido(req.Estado) {
		return nil, apierror.Validation("estado inválido: " + req.Estado)
	}
	usuarioID, err := parseUUIDPtr(req.UsuarioID, "usuario_id")
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(ctx, tx, id); err != nil {
			return notFoundOr(err, "Cotización no encontrada")
		}
		if err := s.repo.UpdateEstadoTx(ctx, tx, id, req.Estado); err != nil {
			return err
		}
		return s.repo.CreateHistorialTx(ctx, tx, &model.HistorialEstado{
			CotizacionID: id,
			Estado:       req.Estado,
			Fecha:        time.Now(),
			UsuarioID:    usuarioID,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// ── Item mutations ───────────────────────────────────────────────────────────

func (s *cotizacionService) AgregarItem(ctx context.Context, cotizacionID uuid.UUID, req dto.ItemCotizacionRequest) (*dto.CotizacionResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(ctx, tx, cotizacionID); err != nil {
			return notFoundOr(err, "Cotización no encontrada")
		}
		if err := s.agregarItemTx(ctx, tx, cotizacionID, req); err != nil {
			return err
		}
		return recalcularTotalCotizacionTx(ctx, tx, s.repo, cotizacionID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, cotizacionID)
}

func (s *cotizacionService) ActualizarItem(ctx context.Context, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.CotizacionResponse, error) {
	var cotizacionID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByIDTx(ctx, tx, itemID)
		if err != nil {
			return notFoundOr(err, "Item de cotización no encontrado")
		}
		cotizacionID = item.CotizacionID

		if req.Cantidad != nil {
			if *req.Cantidad <= 0 {
				return apierror.Validation("cantidad debe ser un entero positivo")
			}
			item.Cantidad = *req.Cantidad
		}
		if req.NombreProducto != nil && *req.NombreProducto != "" {
			item.NombreProducto = *req.NombreProducto
		}

		if req.Torta != nil {
			if item.TipoProducto != model.TipoProductoTorta {
				return apierror.Validation("solo los items de tipo torta aceptan una especificación de torta")
			}
			if item.ProductoID == nil {
				detalle, total, err := s.tortas.CrearDetalleTx(ctx, tx, item.ID, *req.Torta)
				if err != nil {
					return err
				}
				item.ProductoID = &detalle.ID
				item.PrecioUnitario = total
			} else {
				_, total, err := s.tortas.ActualizarDetalleTx(ctx, tx, *item.ProductoID, *req.Torta)
				if err != nil {
					return err
				}
				item.PrecioUnitario = total
			}
		}

		item.PrecioTotal = item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		if err := s.repo.UpdateItemTx(ctx, tx, item); err != nil {
			return err
		}
		return recalcularTotalCotizacionTx(ctx, tx, s.repo, item.CotizacionID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, cotizacionID)
}

// EliminarItem removes a quote line. A cake item takes its cake detail and
// link rows with it.
func (s *cotizacionService) EliminarItem(ctx context.Context, itemID uuid.UUID) (*dto.CotizacionResponse, error) {
	var cotizacionID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByIDTx(ctx, tx, itemID)
		if err != nil {
			return notFoundOr(err, "Item de cotización no encontrado")
		}
		cotizacionID = item.CotizacionID

		if item.TipoProducto == model.TipoProductoTorta && item.ProductoID != nil {
			if err := s.detalleRepo.DeleteTx(ctx, tx, *item.ProductoID); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteItemTx(ctx, tx, itemID); err != nil {
			return err
		}
		return recalcularTotalCotizacionTx(ctx, tx, s.repo, cotizacionID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, cotizacionID)
}

// ── PDF / email ──────────────────────────────────────────────────────────────

func (s *cotizacionService) GenerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	cotizacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", notFoundOr(err, "Cotización no encontrada")
	}
	return infra.GenerateCotizacionPDF(cotizacion, s.storagePath)
}

// EnviarPorEmail queues the quote PDF for delivery. The send itself happens
// in the worker pool; this only resolves the destination address.
func (s *cotizacionService) EnviarPorEmail(ctx context.Context, id uuid.UUID, req dto.EnviarCotizacionRequest) error {
	cotizacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Cotización no encontrada")
	}

	var destino string
	if req.Email != nil && *req.Email != "" {
		destino = *req.Email
	} else if cotizacion.Cliente != nil && cotizacion.Cliente.Email != nil {
		destino = *cotizacion.Cliente.Email
	}
	if destino == "" {
		return apierror.Validation("El cliente no tiene email registrado; indique un email de destino")
	}

	if s.dispatcher == nil {
		return errors.New("el servicio de envío de correos no está disponible")
	}
	return s.dispatcher.EnqueueEmailCotizacion(ctx, map[string]interface{}{
		"cotizacion_id": cotizacion.ID.String(),
		"email":         destino,
	})
}

// ── Helpers / mapping ────────────────────────────────────────────────────────

func parseFechaEvento(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, apierror.Validation("fecha_evento debe tener formato YYYY-MM-DD")
	}
	return &t, nil
}

func parseUUIDPtr(s *string, campo string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apierror.Validation(campo + " inválido")
	}
	return &id, nil
}

func itemToResponse(item *model.ItemCotizacion) *dto.ItemCotizacionResponse {
	resp := &dto.ItemCotizacionResponse{
		ID:             item.ID.String(),
		CotizacionID:   item.CotizacionID.String(),
		TipoProducto:   item.TipoProducto,
		ProductoID:     uuidPtrToString(item.ProductoID),
		NombreProducto: item.NombreProducto,
		Cantidad:       item.Cantidad,
		PrecioUnitario: item.PrecioUnitario,
		PrecioTotal:    item.PrecioTotal,
	}
	if item.DetalleTorta != nil {
		resp.DetalleTorta = detalleToResponse(item.DetalleTorta)
	}
	return resp
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	items := make([]dto.ItemCotizacionResponse, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, *itemToResponse(&c.Items[i]))
	}

	historial := make([]dto.HistorialEstadoResponse, 0, len(c.Historial))
	for _, h := range c.Historial {
		historial = append(historial, dto.HistorialEstadoResponse{
			Estado:    h.Estado,
			Fecha:     h.Fecha.Format(time.RFC3339),
			UsuarioID: uuidPtrToString(h.UsuarioID),
		})
	}

	var fechaEvento *string
	if c.FechaEvento != nil {
		f := c.FechaEvento.Format("2006-01-02")
		fechaEvento = &f
	}
	clienteNombre := ""
	if c.Cliente != nil {
		clienteNombre = c.Cliente.Nombre
	}

	return &dto.CotizacionResponse{
		ID:               c.ID.String(),
		NumeroCotizacion: c.NumeroCotizacion,
		ClienteID:        c.ClienteID.String(),
		ClienteNombre:    clienteNombre,
		FechaEvento:      fechaEvento,
		Observaciones:    c.Observaciones,
		SucursalID:       uuidPtrToString(c.SucursalID),
		UsuarioCreadorID: uuidPtrToString(c.UsuarioCreadorID),
		Total:            c.Total,
		Estado:           c.Estado,
		Items:            items,
		Historial:        historial,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}
