package repository

import (
	"context"

	"pasteleria/internal/dto"
	"pasteleria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CotizacionRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	NextNumeroCotizacion(ctx context.Context, tx *gorm.DB) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	UpdateTotalTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	BuscarPorNombreTorta(ctx context.Context, nombre string) ([]model.Cotizacion, error)

	CreateItemTx(ctx context.Context, tx *gorm.DB, item *model.ItemCotizacion) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.ItemCotizacion, error)
	FindItemByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ItemCotizacion, error)
	UpdateItemTx(ctx context.Context, tx *gorm.DB, item *model.ItemCotizacion) error
	DeleteItemTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListItems(ctx context.Context, filter dto.ItemFilter) ([]model.ItemCotizacion, error)
	ExisteItemTortaTx(ctx context.Context, tx *gorm.DB, cotizacionID, detalleTortaID uuid.UUID) (bool, error)

	CreateHistorialTx(ctx context.Context, tx *gorm.DB, h *model.HistorialEstado) error
	SumItemsTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func (r *cotizacionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cotizacionRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *cotizacionRepo) NextNumeroCotizacion(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic, gap-tolerant quote numbering
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('cotizaciones_numero_seq')").Scan(&num).Error
	return num, err
}

func preloadCotizacion(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Cliente").
		Preload("Sucursal").
		Preload("UsuarioCreador").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.DetalleTorta.TortaBase").
		Preload("Items.DetalleTorta.Cobertura").
		Preload("Items.DetalleTorta.Decoracion").
		Preload("Items.DetalleTorta.Elementos.ElementoDecorativo").
		Preload("Items.DetalleTorta.Extras.Extra").
		Preload("Items.DetalleTorta.DecoracionesAdicionales.Decoracion").
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") })
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := preloadCotizacion(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDTx loads the quote row without associations, for use inside writes.
func (r *cotizacionRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.conn(tx).WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	return tx.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"cliente_id":    c.ClienteID,
			"fecha_evento":  c.FechaEvento,
			"observaciones": c.Observaciones,
			"sucursal_id":   c.SucursalID,
		}).Error
}

func (r *cotizacionRepo) UpdateTotalTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).
		Update("total", total).Error
}

func (r *cotizacionRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{})

	if filter.Estado != "" {
		q = q.Where("cotizaciones.estado = ?", filter.Estado)
	}
	if filter.SucursalID != "" {
		q = q.Where("cotizaciones.sucursal_id = ?", filter.SucursalID)
	}
	if filter.UsuarioCreadorID != "" {
		q = q.Where("cotizaciones.usuario_creador_id = ?", filter.UsuarioCreadorID)
	}
	if filter.FechaDesde != "" {
		q = q.Where("DATE(cotizaciones.created_at) >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("DATE(cotizaciones.created_at) <= ?", filter.FechaHasta)
	}
	if filter.ClienteNombre != "" {
		q = q.Joins("JOIN clientes ON clientes.id = cotizaciones.cliente_id").
			Where("clientes.nombre ILIKE ?", "%"+filter.ClienteNombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := preloadCotizacion(q).
		Order("cotizaciones.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cotizaciones).Error

	return cotizaciones, total, err
}

// BuscarPorNombreTorta returns quotes containing at least one cake item whose
// display name matches the given fragment.
func (r *cotizacionRepo) BuscarPorNombreTorta(ctx context.Context, nombre string) ([]model.Cotizacion, error) {
	sub := r.db.Model(&model.ItemCotizacion{}).
		Select("cotizacion_id").
		Where("tipo_producto = ? AND nombre_producto ILIKE ?", model.TipoProductoTorta, "%"+nombre+"%")

	var cotizaciones []model.Cotizacion
	err := preloadCotizacion(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&cotizaciones).Error
	return cotizaciones, err
}

// ── Items ────────────────────────────────────────────────────────────────────

func (r *cotizacionRepo) CreateItemTx(ctx context.Context, tx *gorm.DB, item *model.ItemCotizacion) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *cotizacionRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.ItemCotizacion, error) {
	return r.FindItemByIDTx(ctx, nil, id)
}

func (r *cotizacionRepo) FindItemByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ItemCotizacion, error) {
	var item model.ItemCotizacion
	err := r.conn(tx).WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cotizacionRepo) UpdateItemTx(ctx context.Context, tx *gorm.DB, item *model.ItemCotizacion) error {
	return tx.WithContext(ctx).Model(&model.ItemCotizacion{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"producto_id":     item.ProductoID,
			"nombre_producto": item.NombreProducto,
			"cantidad":        item.Cantidad,
			"precio_unitario": item.PrecioUnitario,
			"precio_total":    item.PrecioTotal,
		}).Error
}

func (r *cotizacionRepo) DeleteItemTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.ItemCotizacion{}, "id = ?", id).Error
}

func (r *cotizacionRepo) ListItems(ctx context.Context, filter dto.ItemFilter) ([]model.ItemCotizacion, error) {
	q := r.db.WithContext(ctx).Model(&model.ItemCotizacion{})
	if filter.CotizacionID != "" {
		q = q.Where("cotizacion_id = ?", filter.CotizacionID)
	}
	if filter.NombreProducto != "" {
		q = q.Where("nombre_producto ILIKE ?", "%"+filter.NombreProducto+"%")
	}
	if filter.TipoProducto != "" {
		q = q.Where("tipo_producto = ?", filter.TipoProducto)
	}
	var items []model.ItemCotizacion
	err := q.Order("created_at ASC").Find(&items).Error
	return items, err
}

// ExisteItemTortaTx reports whether the quote already references the given
// cake through another item.
func (r *cotizacionRepo) ExisteItemTortaTx(ctx context.Context, tx *gorm.DB, cotizacionID, detalleTortaID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&model.ItemCotizacion{}).
		Where("cotizacion_id = ? AND tipo_producto = ? AND producto_id = ?",
			cotizacionID, model.TipoProductoTorta, detalleTortaID).
		Count(&count).Error
	return count > 0, err
}

// ── Historial / totals ───────────────────────────────────────────────────────

func (r *cotizacionRepo) CreateHistorialTx(ctx context.Context, tx *gorm.DB, h *model.HistorialEstado) error {
	return tx.WithContext(ctx).Create(h).Error
}

func (r *cotizacionRepo) SumItemsTx(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(tx).WithContext(ctx).
		Raw("SELECT COALESCE(SUM(precio_total), 0) FROM items_cotizacion WHERE cotizacion_id = ?", cotizacionID).
		Scan(&total).Error
	return total, err
}
