package repository

import (
	"context"

	"pasteleria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DetalleTortaRepository persists cake compositions and their link rows.
// Link rows are always written explicitly (associations omitted) so the
// builder controls exactly what goes into the transaction.
type DetalleTortaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleTorta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DetalleTorta, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.DetalleTorta, error)
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*model.DetalleTorta, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleTorta) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateElementoTx(ctx context.Context, tx *gorm.DB, link *model.ElementoPorTorta) error
	UpdateElementoTx(ctx context.Context, tx *gorm.DB, link *model.ElementoPorTorta) error
	DeleteElementoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateExtraTx(ctx context.Context, tx *gorm.DB, link *model.ExtraPorTorta) error
	UpdateExtraTx(ctx context.Context, tx *gorm.DB, link *model.ExtraPorTorta) error
	DeleteExtraTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateDecoracionTx(ctx context.Context, tx *gorm.DB, link *model.DecoracionPorTorta) error
	UpdateDecoracionTx(ctx context.Context, tx *gorm.DB, link *model.DecoracionPorTorta) error
	DeleteDecoracionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type detalleTortaRepo struct{ db *gorm.DB }

func NewDetalleTortaRepository(db *gorm.DB) DetalleTortaRepository {
	return &detalleTortaRepo{db: db}
}

func (r *detalleTortaRepo) DB() *gorm.DB { return r.db }

func (r *detalleTortaRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *detalleTortaRepo) CreateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleTorta) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func preloadDetalle(q *gorm.DB) *gorm.DB {
	return q.
		Preload("TortaBase").
		Preload("Cobertura").
		Preload("Decoracion").
		Preload("Elementos.ElementoDecorativo").
		Preload("Extras.Extra").
		Preload("DecoracionesAdicionales.Decoracion")
}

func (r *detalleTortaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DetalleTorta, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *detalleTortaRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.DetalleTorta, error) {
	var d model.DetalleTorta
	err := preloadDetalle(r.conn(tx).WithContext(ctx)).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *detalleTortaRepo) FindByItemID(ctx context.Context, itemID uuid.UUID) (*model.DetalleTorta, error) {
	var d model.DetalleTorta
	err := preloadDetalle(r.db.WithContext(ctx)).First(&d, "item_cotizacion_id = ?", itemID).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateTx writes all composition columns, including nil snapshots, so a
// component removed from the cake clears its price column.
func (r *detalleTortaRepo) UpdateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleTorta) error {
	return tx.WithContext(ctx).Model(&model.DetalleTorta{}).Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"torta_base_id":     d.TortaBaseID,
			"cobertura_id":      d.CoberturaID,
			"decoracion_id":     d.DecoracionID,
			"porciones":         d.Porciones,
			"precio_base":       d.PrecioBase,
			"precio_cobertura":  d.PrecioCobertura,
			"precio_decoracion": d.PrecioDecoracion,
			"imagen_url":        d.ImagenURL,
		}).Error
}

// DeleteTx removes the cake and its link rows, links first.
func (r *detalleTortaRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	q := tx.WithContext(ctx)
	if err := q.Where("detalle_torta_id = ?", id).Delete(&model.ElementoPorTorta{}).Error; err != nil {
		return err
	}
	if err := q.Where("detalle_torta_id = ?", id).Delete(&model.ExtraPorTorta{}).Error; err != nil {
		return err
	}
	if err := q.Where("detalle_torta_id = ?", id).Delete(&model.DecoracionPorTorta{}).Error; err != nil {
		return err
	}
	return q.Delete(&model.DetalleTorta{}, "id = ?", id).Error
}

// ── Link rows ────────────────────────────────────────────────────────────────

func (r *detalleTortaRepo) CreateElementoTx(ctx context.Context, tx *gorm.DB, link *model.ElementoPorTorta) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (r *detalleTortaRepo) UpdateElementoTx(ctx context.Context, tx *gorm.DB, link *model.ElementoPorTorta) error {
	return tx.WithContext(ctx).Model(&model.ElementoPorTorta{}).Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"elemento_decorativo_id": link.ElementoDecorativoID,
			"cantidad":               link.Cantidad,
			"precio_unitario":        link.PrecioUnitario,
			"precio_total":           link.PrecioTotal,
		}).Error
}

func (r *detalleTortaRepo) DeleteElementoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.ElementoPorTorta{}, "id = ?", id).Error
}

func (r *detalleTortaRepo) CreateExtraTx(ctx context.Context, tx *gorm.DB, link *model.ExtraPorTorta) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (r *detalleTortaRepo) UpdateExtraTx(ctx context.Context, tx *gorm.DB, link *model.ExtraPorTorta) error {
	return tx.WithContext(ctx).Model(&model.ExtraPorTorta{}).Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"extra_id":        link.ExtraID,
			"cantidad":        link.Cantidad,
			"precio_unitario": link.PrecioUnitario,
			"precio_total":    link.PrecioTotal,
		}).Error
}

func (r *detalleTortaRepo) DeleteExtraTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.ExtraPorTorta{}, "id = ?", id).Error
}

func (r *detalleTortaRepo) CreateDecoracionTx(ctx context.Context, tx *gorm.DB, link *model.DecoracionPorTorta) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (r *detalleTortaRepo) UpdateDecoracionTx(ctx context.Context, tx *gorm.DB, link *model.DecoracionPorTorta) error {
	return tx.WithContext(ctx).Model(&model.DecoracionPorTorta{}).Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"decoracion_id":   link.DecoracionID,
			"cantidad":        link.Cantidad,
			"precio_unitario": link.PrecioUnitario,
			"precio_total":    link.PrecioTotal,
		}).Error
}

func (r *detalleTortaRepo) DeleteDecoracionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.DecoracionPorTorta{}, "id = ?", id).Error
}
