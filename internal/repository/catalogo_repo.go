package repository

import (
	"context"
	"errors"
	"time"

	"pasteleria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTipoInvalido is returned when a catalog operation names an unknown
// component type. Services map it to a validation error.
var ErrTipoInvalido = errors.New("tipo de componente no soportado")

// tablaCatalogo describes one catalog table. The eight catalog types share
// the same row shape except for the price column name and two optional
// columns, so all CRUD goes through this descriptor instead of eight repos.
type tablaCatalogo struct {
	nombre       string
	precioCol    string // empty for portion-priced components
	conImagen    bool
	conPorciones bool
}

var tablasCatalogo = map[string]tablaCatalogo{
	model.TipoTortaBase:          {nombre: "tortas_base", conImagen: true},
	model.TipoCobertura:          {nombre: "coberturas", conImagen: true},
	model.TipoDecoracion:         {nombre: "decoraciones", conImagen: true},
	model.TipoElementoDecorativo: {nombre: "elementos_decorativos", precioCol: "precio_unitario", conImagen: true},
	model.TipoExtra:              {nombre: "extras", precioCol: "precio_unitario"},
	model.TipoMiniTorta:          {nombre: "mini_tortas", precioCol: "precio", conImagen: true, conPorciones: true},
	model.TipoPostre:             {nombre: "postres", precioCol: "precio", conImagen: true},
	model.TipoOtroProducto:       {nombre: "otros_productos", precioCol: "precio", conImagen: true},
}

func (t tablaCatalogo) selectCols() string {
	cols := "id, nombre, descripcion, activo"
	if t.conImagen {
		cols += ", imagen_url"
	}
	if t.precioCol != "" {
		cols += ", " + t.precioCol + " AS precio"
	}
	if t.conPorciones {
		cols += ", porciones"
	}
	return cols
}

// tablaPrecios maps the four portion-priced types to their price table and
// its component foreign key column (each table keeps a distinct FK name).
type tablaPrecios struct {
	nombre string
	fkCol  string
}

var tablasPrecios = map[string]tablaPrecios{
	model.TipoTortaBase:  {nombre: "precios_porcion_torta_base", fkCol: "torta_base_id"},
	model.TipoCobertura:  {nombre: "precios_porcion_cobertura", fkCol: "cobertura_id"},
	model.TipoDecoracion: {nombre: "precios_porcion_decoracion", fkCol: "decoracion_id"},
	model.TipoMiniTorta:  {nombre: "precios_porcion_mini_torta", fkCol: "mini_torta_id"},
}

type CatalogoRepository interface {
	Find(ctx context.Context, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error)
	FindTx(ctx context.Context, tx *gorm.DB, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error)
	List(ctx context.Context, tipo string, incluirInactivos bool) ([]model.ComponenteCatalogo, error)
	Create(ctx context.Context, tipo string, comp *model.ComponenteCatalogo) error
	Update(ctx context.Context, tipo string, comp *model.ComponenteCatalogo) error
	Desactivar(ctx context.Context, tipo string, id uuid.UUID) error
	ReferenciadoPorTortas(ctx context.Context, tipo string, id uuid.UUID) (bool, error)

	FindPrecioPorcionTx(ctx context.Context, tx *gorm.DB, tipo string, componenteID uuid.UUID, porciones int) (*model.PrecioPorcion, error)
	FindPrecioPorcionPorID(ctx context.Context, tipo string, id uuid.UUID) (*model.PrecioPorcion, error)
	ListPreciosPorcion(ctx context.Context, tipo string, componenteID uuid.UUID) ([]model.PrecioPorcion, error)
	CreatePrecioPorcion(ctx context.Context, tipo string, componenteID uuid.UUID, pp *model.PrecioPorcion) error
	UpdatePrecioPorcion(ctx context.Context, tipo string, pp *model.PrecioPorcion) error
	DeletePrecioPorcion(ctx context.Context, tipo string, id uuid.UUID) error

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) DB() *gorm.DB { return r.db }

func (r *catalogoRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *catalogoRepo) Find(ctx context.Context, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error) {
	return r.FindTx(ctx, nil, tipo, id)
}

func (r *catalogoRepo) FindTx(ctx context.Context, tx *gorm.DB, tipo string, id uuid.UUID) (*model.ComponenteCatalogo, error) {
	t, ok := tablasCatalogo[tipo]
	if !ok {
		return nil, ErrTipoInvalido
	}
	var comp model.ComponenteCatalogo
	err := r.conn(tx).WithContext(ctx).Table(t.nombre).
		Select(t.selectCols()).
		Where("id = ?", id).
		Take(&comp).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *catalogoRepo) List(ctx context.Context, tipo string, incluirInactivos bool) ([]model.ComponenteCatalogo, error) {
	t, ok := tablasCatalogo[tipo]
	if !ok {
		return nil, ErrTipoInvalido
	}
	q := r.db.WithContext(ctx).Table(t.nombre).Select(t.selectCols())
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var comps []model.ComponenteCatalogo
	err := q.Order("nombre ASC").Find(&comps).Error
	return comps, err
}

func (r *catalogoRepo) Create(ctx context.Context, tipo string, comp *model.ComponenteCatalogo) error {
	t, ok := tablasCatalogo[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	if comp.ID == uuid.Nil {
		comp.ID = uuid.New()
	}
	comp.Activo = true
	now := time.Now()
	vals := map[string]interface{}{
		"id":          comp.ID,
		"nombre":      comp.Nombre,
		"descripcion": comp.Descripcion,
		"activo":      true,
		"created_at":  now,
		"updated_at":  now,
	}
	if t.conImagen {
		vals["imagen_url"] = comp.ImagenURL
	}
	if t.precioCol != "" {
		vals[t.precioCol] = comp.Precio
	}
	if t.conPorciones {
		vals["porciones"] = comp.Porciones
	}
	return r.db.WithContext(ctx).Table(t.nombre).Create(vals).Error
}

func (r *catalogoRepo) Update(ctx context.Context, tipo string, comp *model.ComponenteCatalogo) error {
	t, ok := tablasCatalogo[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	vals := map[string]interface{}{
		"nombre":      comp.Nombre,
		"descripcion": comp.Descripcion,
		"activo":      comp.Activo,
		"updated_at":  time.Now(),
	}
	if t.conImagen {
		vals["imagen_url"] = comp.ImagenURL
	}
	if t.precioCol != "" {
		vals[t.precioCol] = comp.Precio
	}
	if t.conPorciones {
		vals["porciones"] = comp.Porciones
	}
	return r.db.WithContext(ctx).Table(t.nombre).Where("id = ?", comp.ID).Updates(vals).Error
}

func (r *catalogoRepo) Desactivar(ctx context.Context, tipo string, id uuid.UUID) error {
	t, ok := tablasCatalogo[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	return r.db.WithContext(ctx).Table(t.nombre).Where("id = ?", id).
		Updates(map[string]interface{}{"activo": false, "updated_at": time.Now()}).Error
}

// ReferenciadoPorTortas reports whether any cake or quote item still points at
// the catalog row, which blocks its deletion.
func (r *catalogoRepo) ReferenciadoPorTortas(ctx context.Context, tipo string, id uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx)
	var err error
	switch tipo {
	case model.TipoTortaBase:
		err = q.Model(&model.DetalleTorta{}).Where("torta_base_id = ?", id).Count(&count).Error
	case model.TipoCobertura:
		err = q.Model(&model.DetalleTorta{}).Where("cobertura_id = ?", id).Count(&count).Error
	case model.TipoDecoracion:
		err = q.Model(&model.DetalleTorta{}).Where("decoracion_id = ?", id).Count(&count).Error
		if err == nil && count == 0 {
			err = q.Model(&model.DecoracionPorTorta{}).Where("decoracion_id = ?", id).Count(&count).Error
		}
	case model.TipoElementoDecorativo:
		err = q.Model(&model.ElementoPorTorta{}).Where("elemento_decorativo_id = ?", id).Count(&count).Error
	case model.TipoExtra:
		err = q.Model(&model.ExtraPorTorta{}).Where("extra_id = ?", id).Count(&count).Error
	case model.TipoMiniTorta, model.TipoPostre, model.TipoOtroProducto:
		err = q.Model(&model.ItemCotizacion{}).
			Where("tipo_producto = ? AND producto_id = ?", tipo, id).Count(&count).Error
	default:
		return false, ErrTipoInvalido
	}
	return count > 0, err
}

// ── Portion prices ───────────────────────────────────────────────────────────

func (r *catalogoRepo) FindPrecioPorcionTx(ctx context.Context, tx *gorm.DB, tipo string, componenteID uuid.UUID, porciones int) (*model.PrecioPorcion, error) {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return nil, ErrTipoInvalido
	}
	var pp model.PrecioPorcion
	err := r.conn(tx).WithContext(ctx).Table(t.nombre).
		Select("id, porciones, precio").
		Where(t.fkCol+" = ? AND porciones = ?", componenteID, porciones).
		Take(&pp).Error
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *catalogoRepo) FindPrecioPorcionPorID(ctx context.Context, tipo string, id uuid.UUID) (*model.PrecioPorcion, error) {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return nil, ErrTipoInvalido
	}
	var pp model.PrecioPorcion
	err := r.db.WithContext(ctx).Table(t.nombre).
		Select("id, "+t.fkCol+" AS componente_id, porciones, precio").
		Where("id = ?", id).
		Take(&pp).Error
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *catalogoRepo) ListPreciosPorcion(ctx context.Context, tipo string, componenteID uuid.UUID) ([]model.PrecioPorcion, error) {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return nil, ErrTipoInvalido
	}
	var pps []model.PrecioPorcion
	err := r.db.WithContext(ctx).Table(t.nombre).
		Select("id, porciones, precio").
		Where(t.fkCol+" = ?", componenteID).
		Order("porciones ASC").
		Find(&pps).Error
	return pps, err
}

func (r *catalogoRepo) CreatePrecioPorcion(ctx context.Context, tipo string, componenteID uuid.UUID, pp *model.PrecioPorcion) error {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	now := time.Now()
	return r.db.WithContext(ctx).Table(t.nombre).Create(map[string]interface{}{
		"id":         pp.ID,
		t.fkCol:      componenteID,
		"porciones":  pp.Porciones,
		"precio":     pp.Precio,
		"created_at": now,
		"updated_at": now,
	}).Error
}

func (r *catalogoRepo) UpdatePrecioPorcion(ctx context.Context, tipo string, pp *model.PrecioPorcion) error {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	return r.db.WithContext(ctx).Table(t.nombre).Where("id = ?", pp.ID).
		Updates(map[string]interface{}{
			"porciones":  pp.Porciones,
			"precio":     pp.Precio,
			"updated_at": time.Now(),
		}).Error
}

func (r *catalogoRepo) DeletePrecioPorcion(ctx context.Context, tipo string, id uuid.UUID) error {
	t, ok := tablasPrecios[tipo]
	if !ok {
		return ErrTipoInvalido
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM "+t.nombre+" WHERE id = ?", id).Error
}
