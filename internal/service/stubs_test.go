package service_test

import (
	"context"
	"sort"

	"pasteleria/internal/dto"
	"pasteleria/internal/model"
	"pasteleria/internal/repository"
	"pasteleria/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository implementations. DB() returns nil, which makes the
// services run their transaction closures directly against these stubs.

var tiposValidos = map[string]bool{
	model.TipoTortaBase:          true,
	model.TipoCobertura:          true,
	model.TipoDecoracion:         true,
	model.TipoElementoDecorativo: true,
	model.TipoExtra:              true,
	model.TipoMiniTorta:          true,
	model.TipoPostre:             true,
	model.TipoOtroProducto:       true,
}

var tiposPorcionados = map[string]bool{
	model.TipoTortaBase:  true,
	model.TipoCobertura:  true,
	model.TipoDecoracion: true,
	model.TipoMiniTorta:  true,
}

// stubCatalogoRepo keeps catalog components and portion prices per type.
type stubCatalogoRepo struct {
	comps         map[string]map[uuid.UUID]*model.ComponenteCatalogo
	precios       map[string]map[uuid.UUID]map[int]*model.PrecioPorcion
	preciosPorID  map[uuid.UUID]*model.PrecioPorcion
	referenciados map[uuid.UUID]bool
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		comps:         make(map[string]map[uuid.UUID]*model.ComponenteCatalogo),
		precios:       make(map[string]map[uuid.UUID]map[int]*model.PrecioPorcion),
		preciosPorID:  make(map[uuid.UUID]*model.PrecioPorcion),
		referenciados: make(map[uuid.UUID]bool),
	}
}

func (r *stubCatalogoRepo) seedComponente(tipo, nombre string, precio *decimal.Decimal) uuid.UUID {
	comp := &model.ComponenteCatalogo{
		ID:     uuid.New(),
		Nombre: nombre,
		Precio: precio,
		Activo: true,
	}
	if r.comps[tipo] == nil {
		r.comps[tipo] = make(map[uuid.UUID]*model.ComponenteCatalogo)
	}
	r.comps[tipo][comp.ID] = comp
	return comp.ID
}

func (r *stubCatalogoRepo) seedPrecio(tipo string, componenteID uuid.UUID, porciones int, precio string) {
	pp := &model.PrecioPorcion{
		ID:           uuid.New(),
		ComponenteID: componenteID,
		Porciones:    porciones,
		Precio:       decimal.RequireFromString(precio),
	}
	if r.precios[tipo] == nil {
		r.precios[tipo] = make(map[uuid.UUID]map[int]*model.PrecioPorcion)
	}
	if r.precios[tipo][componenteID] == nil {
		r.precios[tipo][componenteID] = make(map[int]*model.PrecioPorcion)
	}
	r.precios[tipo][componenteID][porciones] = pp
	r.preciosPorID[pp.ID] = pp
}

func (r *stubCatalogoRepo) Find(_ context.Context, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error) {
	return r.FindTx(nil, nil, tipo, id)
}

func (r *stubCatalogoRepo) FindTx(_ context.Context, _ *gorm.DB, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error) {
	if !tiposValidos[tipo] {
		return nil, repository.ErrTipoInvalido
	}
	comp, ok := r.comps[tipo][id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comp, nil
}

func (r *stubCatalogoRepo) List(_ context.Context, tipo string, incluirInactivos bool) ([]model.ComponenteCatalogo, error) {
	if !tiposValidos[tipo] {
		return nil, repository.ErrTipoInvalido
	}
	var out []model.ComponenteCatalogo
	for _, comp := range r.comps[tipo] {
		if comp.Activo || incluirInactivos {
			out = append(out, *comp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubCatalogoRepo) Create(_ context.Context, tipo string, comp *model.ComponenteCatalogo) error {
	if !tiposValidos[tipo] {
		return repository.ErrTipoInvalido
	}
	if comp.ID == uuid.Nil {
		comp.ID = uuid.New()
	}
	comp.Activo = true
	if r.comps[tipo] == nil {
		r.comps[tipo] = make(map[uuid.UUID]*model.ComponenteCatalogo)
	}
	r.comps[tipo][comp.ID] = comp
	return nil
}

func (r *stubCatalogoRepo) Update(_ context.Context, tipo string, comp *model.ComponenteCatalogo) error {
	if !tiposValidos[tipo] {
		return repository.ErrTipoInvalido
	}
	r.comps[tipo][comp.ID] = comp
	return nil
}

func (r *stubCatalogoRepo) Desactivar(_ context.Context, tipo string, id uuid.UUID) error {
	if comp, ok := r.comps[tipo][id]; ok {
		comp.Activo = false
	}
	return nil
}

func (r *stubCatalogoRepo) ReferenciadoPorTortas(_ context.Context, tipo string, id uuid.UUID) (bool, error) {
	if !tiposValidos[tipo] {
		return false, repository.ErrTipoInvalido
	}
	return r.referenciados[id], nil
}

func (r *stubCatalogoRepo) FindPrecioPorcionTx(_ context.Context, _ *gorm.DB, tipo string, componenteID uuid.UUID, porciones int) (*model.PrecioPorcion, error) {
	if !tiposPorcionados[tipo] {
		return nil, repository.ErrTipoInvalido
	}
	pp, ok := r.precios[tipo][componenteID][porciones]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pp, nil
}

func (r *stubCatalogoRepo) FindPrecioPorcionPorID(_ context.Context, tipo string, id uuid.UUID) (*model.PrecioPorcion, error) {
	if !tiposPorcionados[tipo] {
		return nil, repository.ErrTipoInvalido
	}
	pp, ok := r.preciosPorID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pp, nil
}

func (r *stubCatalogoRepo) ListPreciosPorcion(_ context.Context, tipo string, componenteID uuid.UUID) ([]model.PrecioPorcion, error) {
	if !tiposPorcionados[tipo] {
		return nil, repository.ErrTipoInvalido
	}
	var out []model.PrecioPorcion
	for _, pp := range r.precios[tipo][componenteID] {
		out = append(out, *pp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Porciones < out[j].Porciones })
	return out, nil
}

func (r *stubCatalogoRepo) CreatePrecioPorcion(_ context.Context, tipo string, componenteID uuid.UUID, pp *model.PrecioPorcion) error {
	if !tiposPorcionados[tipo] {
		return repository.ErrTipoInvalido
	}
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	pp.ComponenteID = componenteID
	if r.precios[tipo] == nil {
		r.precios[tipo] = make(map[uuid.UUID]map[int]*model.PrecioPorcion)
	}
	if r.precios[tipo][componenteID] == nil {
		r.precios[tipo][componenteID] = make(map[int]*model.PrecioPorcion)
	}
	r.precios[tipo][componenteID][pp.Porciones] = pp
	r.preciosPorID[pp.ID] = pp
	return nil
}

func (r *stubCatalogoRepo) UpdatePrecioPorcion(_ context.Context, tipo string, pp *model.PrecioPorcion) error {
	if !tiposPorcionados[tipo] {
		return repository.ErrTipoInvalido
	}
	r.preciosPorID[pp.ID] = pp
	return nil
}

func (r *stubCatalogoRepo) DeletePrecioPorcion(_ context.Context, tipo string, id uuid.UUID) error {
	if !tiposPorcionados[tipo] {
		return repository.ErrTipoInvalido
	}
	delete(r.preciosPorID, id)
	return nil
}

func (r *stubCatalogoRepo) DB() *gorm.DB { return nil }

var _ repository.CatalogoRepository = (*stubCatalogoRepo)(nil)

// stubDetalleRepo stores cake details and their link rows. Find methods
// compose the detail with its links the way the real repo preloads them.
type stubDetalleRepo struct {
	detalles     map[uuid.UUID]*model.DetalleTorta
	elementos    []*model.ElementoPorTorta
	extras       []*model.ExtraPorTorta
	decoraciones []*model.DecoracionPorTorta
}

func newStubDetalleRepo() *stubDetalleRepo {
	return &stubDetalleRepo{detalles: make(map[uuid.UUID]*model.DetalleTorta)}
}

func (r *stubDetalleRepo) CreateTx(_ context.Context, _ *gorm.DB, d *model.DetalleTorta) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	base := *d
	base.Elementos = nil
	base.Extras = nil
	base.DecoracionesAdicionales = nil
	r.detalles[d.ID] = &base
	return nil
}

func (r *stubDetalleRepo) componer(base *model.DetalleTorta) *model.DetalleTorta {
	d := *base
	d.Elementos = nil
	d.Extras = nil
	d.DecoracionesAdicionales = nil
	for _, link := range r.elementos {
		if link.DetalleTortaID == d.ID {
			d.Elementos = append(d.Elementos, *link)
		}
	}
	for _, link := range r.extras {
		if link.DetalleTortaID == d.ID {
			d.Extras = append(d.Extras, *link)
		}
	}
	for _, link := range r.decoraciones {
		if link.DetalleTortaID == d.ID {
			d.DecoracionesAdicionales = append(d.DecoracionesAdicionales, *link)
		}
	}
	return &d
}

func (r *stubDetalleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DetalleTorta, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *stubDetalleRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.DetalleTorta, error) {
	base, ok := r.detalles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.componer(base), nil
}

func (r *stubDetalleRepo) FindByItemID(_ context.Context, itemID uuid.UUID) (*model.DetalleTorta, error) {
	for _, base := range r.detalles {
		if base.ItemCotizacionID == itemID {
			return r.componer(base), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDetalleRepo) UpdateTx(_ context.Context, _ *gorm.DB, d *model.DetalleTorta) error {
	base, ok := r.detalles[d.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	base.TortaBaseID = d.TortaBaseID
	base.CoberturaID = d.CoberturaID
	base.DecoracionID = d.DecoracionID
	base.Porciones = d.Porciones
	base.PrecioBase = d.PrecioBase
	base.PrecioCobertura = d.PrecioCobertura
	base.PrecioDecoracion = d.PrecioDecoracion
	base.ImagenURL = d.ImagenURL
	return nil
}

func (r *stubDetalleRepo) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	var elementos []*model.ElementoPorTorta
	for _, link := range r.elementos {
		if link.DetalleTortaID != id {
			elementos = append(elementos, link)
		}
	}
	r.elementos = elementos
	var extras []*model.ExtraPorTorta
	for _, link := range r.extras {
		if link.DetalleTortaID != id {
			extras = append(extras, link)
		}
	}
	r.extras = extras
	var decoraciones []*model.DecoracionPorTorta
	for _, link := range r.decoraciones {
		if link.DetalleTortaID != id {
			decoraciones = append(decoraciones, link)
		}
	}
	r.decoraciones = decoraciones
	delete(r.detalles, id)
	return nil
}

func (r *stubDetalleRepo) CreateElementoTx(_ context.Context, _ *gorm.DB, link *model.ElementoPorTorta) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	cp := *link
	r.elementos = append(r.elementos, &cp)
	return nil
}

func (r *stubDetalleRepo) UpdateElementoTx(_ context.Context, _ *gorm.DB, link *model.ElementoPorTorta) error {
	for _, existente := range r.elementos {
		if existente.ID == link.ID {
			existente.ElementoDecorativoID = link.ElementoDecorativoID
			existente.Cantidad = link.Cantidad
			existente.PrecioUnitario = link.PrecioUnitario
			existente.PrecioTotal = link.PrecioTotal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubDetalleRepo) DeleteElementoTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	var out []*model.ElementoPorTorta
	for _, link := range r.elementos {
		if link.ID != id {
			out = append(out, link)
		}
	}
	r.elementos = out
	return nil
}

func (r *stubDetalleRepo) CreateExtraTx(_ context.Context, _ *gorm.DB, link *model.ExtraPorTorta) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	cp := *link
	r.extras = append(r.extras, &cp)
	return nil
}

func (r *stubDetalleRepo) UpdateExtraTx(_ context.Context, _ *gorm.DB, link *model.ExtraPorTorta) error {
	for _, existente := range r.extras {
		if existente.ID == link.ID {
			existente.ExtraID = link.ExtraID
			existente.Cantidad = link.Cantidad
			existente.PrecioUnitario = link.PrecioUnitario
			existente.PrecioTotal = link.PrecioTotal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubDetalleRepo) DeleteExtraTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	var out []*model.ExtraPorTorta
	for _, link := range r.extras {
		if link.ID != id {
			out = append(out, link)
		}
	}
	r.extras = out
	return nil
}

func (r *stubDetalleRepo) CreateDecoracionTx(_ context.Context, _ *gorm.DB, link *model.DecoracionPorTorta) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	cp := *link
	r.decoraciones = append(r.decoraciones, &cp)
	return nil
}

func (r *stubDetalleRepo) UpdateDecoracionTx(_ context.Context, _ *gorm.DB, link *model.DecoracionPorTorta) error {
	for _, existente := range r.decoraciones {
		if existente.ID == link.ID {
			existente.DecoracionID = link.DecoracionID
			existente.Cantidad = link.Cantidad
			existente.PrecioUnitario = link.PrecioUnitario
			existente.PrecioTotal = link.PrecioTotal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubDetalleRepo) DeleteDecoracionTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	var out []*model.DecoracionPorTorta
	for _, link := range r.decoraciones {
		if link.ID != id {
			out = append(out, link)
		}
	}
	r.decoraciones = out
	return nil
}

func (r *stubDetalleRepo) DB() *gorm.DB { return nil }

var _ repository.DetalleTortaRepository = (*stubDetalleRepo)(nil)

// stubCotizacionRepo stores quotes, items and history rows.
type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
	items        []*model.ItemCotizacion
	historial    []*model.HistorialEstado
	clientes     *stubClienteRepo
	seq          int
}

func newStubCotizacionRepo(clientes *stubClienteRepo) *stubCotizacionRepo {
	return &stubCotizacionRepo{
		cotizaciones: make(map[uuid.UUID]*model.Cotizacion),
		clientes:     clientes,
	}
}

func (r *stubCotizacionRepo) CreateTx(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	base := *c
	base.Items = nil
	base.Historial = nil
	r.cotizaciones[c.ID] = &base
	return nil
}

func (r *stubCotizacionRepo) NextNumeroCotizacion(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	base, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *base
	for _, item := range r.items {
		if item.CotizacionID == id {
			c.Items = append(c.Items, *item)
		}
	}
	for _, h := range r.historial {
		if h.CotizacionID == id {
			c.Historial = append(c.Historial, *h)
		}
	}
	if r.clientes != nil {
		if cliente, ok := r.clientes.clientes[c.ClienteID]; ok {
			c.Cliente = cliente
		}
	}
	return &c, nil
}

func (r *stubCotizacionRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCotizacionRepo) UpdateTx(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	base, ok := r.cotizaciones[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	base.ClienteID = c.ClienteID
	base.FechaEvento = c.FechaEvento
	base.Observaciones = c.Observaciones
	base.SucursalID = c.SucursalID
	return nil
}

func (r *stubCotizacionRepo) UpdateTotalTx(_ context.Context, _ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	base, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	base.Total = total
	return nil
}

func (r *stubCotizacionRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	base, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	base.Estado = estado
	return nil
}

func (r *stubCotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var out []model.Cotizacion
	for id := range r.cotizaciones {
		c, _ := r.FindByID(ctx, id)
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCotizacionRepo) BuscarPorNombreTorta(ctx context.Context, nombre string) ([]model.Cotizacion, error) {
	vistos := make(map[uuid.UUID]bool)
	var out []model.Cotizacion
	for _, item := range r.items {
		if item.TipoProducto == model.TipoProductoTorta && item.NombreProducto == nombre && !vistos[item.CotizacionID] {
			vistos[item.CotizacionID] = true
			c, err := r.FindByID(ctx, item.CotizacionID)
			if err != nil {
				return nil, err
			}
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCotizacionRepo) CreateItemTx(_ context.Context, _ *gorm.DB, item *model.ItemCotizacion) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *stubCotizacionRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.ItemCotizacion, error) {
	return r.FindItemByIDTx(ctx, nil, id)
}

func (r *stubCotizacionRepo) FindItemByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.ItemCotizacion, error) {
	for _, item := range r.items {
		if item.ID == id {
			cp := *item
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCotizacionRepo) UpdateItemTx(_ context.Context, _ *gorm.DB, item *model.ItemCotizacion) error {
	for _, existente := range r.items {
		if existente.ID == item.ID {
			existente.ProductoID = item.ProductoID
			existente.NombreProducto = item.NombreProducto
			existente.Cantidad = item.Cantidad
			existente.PrecioUnitario = item.PrecioUnitario
			existente.PrecioTotal = item.PrecioTotal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCotizacionRepo) DeleteItemTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	var out []*model.ItemCotizacion
	for _, item := range r.items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	r.items = out
	return nil
}

func (r *stubCotizacionRepo) ListItems(_ context.Context, filter dto.ItemFilter) ([]model.ItemCotizacion, error) {
	var out []model.ItemCotizacion
	for _, item := range r.items {
		if filter.CotizacionID != "" && item.CotizacionID.String() != filter.CotizacionID {
			continue
		}
		if filter.TipoProducto != "" && item.TipoProducto != filter.TipoProducto {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubCotizacionRepo) ExisteItemTortaTx(_ context.Context, _ *gorm.DB, cotizacionID, detalleTortaID uuid.UUID) (bool, error) {
	for _, item := range r.items {
		if item.CotizacionID == cotizacionID &&
			item.TipoProducto == model.TipoProductoTorta &&
			item.ProductoID != nil && *item.ProductoID == detalleTortaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCotizacionRepo) CreateHistorialTx(_ context.Context, _ *gorm.DB, h *model.HistorialEstado) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	cp := *h
	r.historial = append(r.historial, &cp)
	return nil
}

func (r *stubCotizacionRepo) SumItemsTx(_ context.Context, _ *gorm.DB, cotizacionID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range r.items {
		if item.CotizacionID == cotizacionID {
			total = total.Add(item.PrecioTotal)
		}
	}
	return total, nil
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

var _ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)

// stubClienteRepo holds the clients quotes may reference.
type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) seedCliente(nombre string, email *string) uuid.UUID {
	c := &model.Cliente{ID: uuid.New(), Nombre: nombre, Email: email}
	r.clientes[c.ID] = c
	return c.ID
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Shared fixtures ──────────────────────────────────────────────────────────

// catalogoDemo holds the IDs of a seeded demo catalog:
// vanilla base $50 @20 / $30 @10, fondant $30 @20 / $18 @10,
// flores decoration $20 @20, pearls $2, candles $5, mini cake $25, dessert $15.
type catalogoDemo struct {
	vainillaID uuid.UUID
	fondantID  uuid.UUID
	floresID   uuid.UUID
	perlasID   uuid.UUID
	velasID    uuid.UUID
	miniID     uuid.UUID
	postreID   uuid.UUID
}

func seedCatalogo(cat *stubCatalogoRepo) catalogoDemo {
	demo := catalogoDemo{}

	demo.vainillaID = cat.seedComponente(model.TipoTortaBase, "Bizcochuelo de Vainilla", nil)
	cat.seedPrecio(model.TipoTortaBase, demo.vainillaID, 10, "30.00")
	cat.seedPrecio(model.TipoTortaBase, demo.vainillaID, 20, "50.00")

	demo.fondantID = cat.seedComponente(model.TipoCobertura, "Fondant", nil)
	cat.seedPrecio(model.TipoCobertura, demo.fondantID, 10, "18.00")
	cat.seedPrecio(model.TipoCobertura, demo.fondantID, 20, "30.00")

	demo.floresID = cat.seedComponente(model.TipoDecoracion, "Flores de Azúcar", nil)
	cat.seedPrecio(model.TipoDecoracion, demo.floresID, 10, "12.00")
	cat.seedPrecio(model.TipoDecoracion, demo.floresID, 20, "20.00")

	perla := decimal.RequireFromString("2.00")
	demo.perlasID = cat.seedComponente(model.TipoElementoDecorativo, "Perlas Comestibles", &perla)

	vela := decimal.RequireFromString("5.00")
	demo.velasID = cat.seedComponente(model.TipoExtra, "Velas Personalizadas", &vela)

	mini := decimal.RequireFromString("25.00")
	demo.miniID = cat.seedComponente(model.TipoMiniTorta, "Mini Torta de Chocolate", &mini)

	postre := decimal.RequireFromString("15.00")
	demo.postreID = cat.seedComponente(model.TipoPostre, "Cheesecake de Frutos Rojos", &postre)

	return demo
}

type fixtures struct {
	catalogo    *stubCatalogoRepo
	detalles    *stubDetalleRepo
	cotizacion  *stubCotizacionRepo
	clientes    *stubClienteRepo
	demo        catalogoDemo
	clienteID   uuid.UUID
	tortaSvc    service.TortaService
	cotizacionSvc service.CotizacionService
}

func buildFixtures() *fixtures {
	catalogo := newStubCatalogoRepo()
	detalles := newStubDetalleRepo()
	clientes := newStubClienteRepo()
	cotizacion := newStubCotizacionRepo(clientes)

	demo := seedCatalogo(catalogo)
	email := "demo@pasteleria.test"
	clienteID := clientes.seedCliente("Cliente Demo", &email)

	precioSvc := service.NewPrecioService(catalogo)
	tortaSvc := service.NewTortaService(detalles, cotizacion, catalogo, precioSvc)
	cotizacionSvc := service.NewCotizacionService(
		cotizacion, detalles, clientes, catalogo, tortaSvc, nil, "/tmp/pasteleria-test")

	return &fixtures{
		catalogo:      catalogo,
		detalles:      detalles,
		cotizacion:    cotizacion,
		clientes:      clientes,
		demo:          demo,
		clienteID:     clienteID,
		tortaSvc:      tortaSvc,
		cotizacionSvc: cotizacionSvc,
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
