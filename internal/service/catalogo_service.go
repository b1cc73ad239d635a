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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CatalogoService manages the eight catalog types and the portion-price
// sub-resource of the four portion-priced ones. The tipo argument always
// comes from the URL path; unknown values surface as validation errors.
type CatalogoService interface {
	Listar(ctx context.Context, tipo string, incluirInactivos bool) ([]dto.ComponenteResponse, error)
	Obtener(ctx context.Context, tipo string, id uuid.UUID) (*dto.ComponenteResponse, error)
	Crear(ctx context.Context, tipo string, req dto.CrearComponenteRequest) (*dto.ComponenteResponse, error)
	Actualizar(ctx context.Context, tipo string, id uuid.UUID, req dto.ActualizarComponenteRequest) (*dto.ComponenteResponse, error)
	Eliminar(ctx context.Context, tipo string, id uuid.UUID) error

	ListarPrecios(ctx context.Context, tipo string, componenteID uuid.UUID) ([]dto.PrecioPorcionResponse, error)
	CrearPrecio(ctx context.Context, tipo string, componenteID uuid.UUID, req dto.CrearPrecioPorcionRequest) (*dto.PrecioPorcionResponse, error)
	ActualizarPrecio(ctx context.Context, tipo string, id uuid.UUID, req dto.ActualizarPrecioPorcionRequest) (*dto.PrecioPorcionResponse, error)
	EliminarPrecio(ctx context.Context, tipo string, id uuid.UUID) error
}

// Field applicability per catalog family. Portion-priced components take
// their price from the portion table, never from a direct Precio field;
// mini tortas carry both a flat price and portion prices.
var (
	tiposPorcionPriced = map[string]bool{
		model.TipoTortaBase:  true,
		model.TipoCobertura:  true,
		model.TipoDecoracion: true,
		model.TipoMiniTorta:  true,
	}
	tiposPrecioDirecto = map[string]bool{
		model.TipoElementoDecorativo: true,
		model.TipoExtra:              true,
		model.TipoMiniTorta:          true,
		model.TipoPostre:             true,
		model.TipoOtroProducto:       true,
	}
)

type catalogoService struct {
	repo repository.CatalogoRepository
	rdb  *redis.Client
}

func NewCatalogoService(repo repository.CatalogoRepository, rdb *redis.Client) CatalogoService {
	return &catalogoService{repo: repo, rdb: rdb}
}

func tipoErr(err error) error {
	if errors.Is(err, repository.ErrTipoInvalido) {
		return apierror.Validation("tipo de componente no soportado")
	}
	return err
}

// ── Components ───────────────────────────────────────────────────────────────

func (s *catalogoService) Listar(ctx context.Context, tipo string, incluirInactivos bool) ([]dto.ComponenteResponse, error) {
	comps, err := s.repo.List(ctx, tipo, incluirInactivos)
	if err != nil {
		return nil, tipoErr(err)
	}
	data := make([]dto.ComponenteResponse, 0, len(comps))
	for i := range comps {
		data = append(data, *componenteToResponse(tipo, &comps[i]))
	}
	return data, nil
}

func (s *catalogoService) Obtener(ctx context.Context, tipo string, id uuid.UUID) (*dto.ComponenteResponse, error) {
	comp, err := s.repo.Find(ctx, tipo, id)
	if err != nil {
		return nil, notFoundOr(tipoErr(err), "Componente no encontrado")
	}
	return componenteToResponse(tipo, comp), nil
}

func (s *catalogoService) Crear(ctx context.Context, tipo string, req dto.CrearComponenteRequest) (*dto.ComponenteResponse, error) {
	if err := validarCamposPorTipo(tipo, req.Precio, req.Porciones); err != nil {
		return nil, err
	}

	comp := &model.ComponenteCatalogo{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		ImagenURL:   req.ImagenURL,
		Precio:      req.Precio,
		Porciones:   req.Porciones,
	}
	if err := s.repo.Create(ctx, tipo, comp); err != nil {
		return nil, tipoErr(err)
	}
	return componenteToResponse(tipo, comp), nil
}

func (s *catalogoService) Actualizar(ctx context.Context, tipo string, id uuid.UUID, req dto.ActualizarComponenteRequest) (*dto.ComponenteResponse, error) {
	if err := validarCamposPorTipo(tipo, req.Precio, req.Porciones); err != nil {
		return nil, err
	}

	comp, err := s.repo.Find(ctx, tipo, id)
	if err != nil {
		return nil, notFoundOr(tipoErr(err), "Componente no encontrado")
	}

	if req.Nombre != nil {
		comp.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		comp.Descripcion = req.Descripcion
	}
	if req.ImagenURL != nil {
		comp.ImagenURL = req.ImagenURL
	}
	if req.Precio != nil {
		comp.Precio = req.Precio
	}
	if req.Porciones != nil {
		comp.Porciones = req.Porciones
	}
	if req.Activo != nil {
		comp.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, tipo, comp); err != nil {
		return nil, tipoErr(err)
	}
	s.invalidarCachePrecios(ctx, tipo, id.String())
	return componenteToResponse(tipo, comp), nil
}

// Eliminar deactivates a component. Components referenced by existing cakes
// or quote items are protected; the reference data must outlive the catalog
// row so stored snapshots keep resolving names.
func (s *catalogoService) Eliminar(ctx context.Context, tipo string, id uuid.UUID) error {
	if _, err := s.repo.Find(ctx, tipo, id); err != nil {
		return notFoundOr(tipoErr(err), "Componente no encontrado")
	}
	referenciado, err := s.repo.ReferenciadoPorTortas(ctx, tipo, id)
	if err != nil {
		return tipoErr(err)
	}
	if referenciado {
		return apierror.Conflict("El componente está referenciado por cotizaciones existentes y no puede eliminarse")
	}
	if err := s.repo.Desactivar(ctx, tipo, id); err != nil {
		return err
	}
	s.invalidarCachePrecios(ctx, tipo, id.String())
	return nil
}

func validarCamposPorTipo(tipo string, precio *decimal.Decimal, porciones *int) error {
	if precio != nil && !tiposPrecioDirecto[tipo] {
		return apierror.Validation(
			"el tipo " + tipo + " no admite precio directo; use los precios por porción")
	}
	if porciones != nil && tipo != model.TipoMiniTorta {
		return apierror.Validation("el campo porciones solo aplica a mini tortas")
	}
	return nil
}

func componenteToResponse(tipo string, comp *model.ComponenteCatalogo) *dto.ComponenteResponse {
	return &dto.ComponenteResponse{
		ID:          comp.ID.String(),
		Tipo:        tipo,
		Nombre:      comp.Nombre,
		Descripcion: comp.Descripcion,
		ImagenURL:   comp.ImagenURL,
		Precio:      comp.Precio,
		Porciones:   comp.Porciones,
		Activo:      comp.Activo,
	}
}

// ── Portion prices ───────────────────────────────────────────────────────────

func (s *catalogoService) ListarPrecios(ctx context.Context, tipo string, componenteID uuid.UUID) ([]dto.PrecioPorcionResponse, error) {
	if !tiposPorcionPriced[tipo] {
		return nil, apierror.Validation("el tipo " + tipo + " no tiene precios por porción")
	}
	if _, err := s.repo.Find(ctx, tipo, componenteID); err != nil {
		return nil, notFoundOr(tipoErr(err), "Componente no encontrado")
	}
	pps, err := s.repo.ListPreciosPorcion(ctx, tipo, componenteID)
	if err != nil {
		return nil, tipoErr(err)
	}
	data := make([]dto.PrecioPorcionResponse, 0, len(pps))
	for _, pp := range pps {
		data = append(data, dto.PrecioPorcionResponse{
			ID:        pp.ID.String(),
			Porciones: pp.Porciones,
			Precio:    pp.Precio,
		})
	}
	return data, nil
}

func (s *catalogoService) CrearPrecio(ctx context.Context, tipo string, componenteID uuid.UUID, req dto.CrearPrecioPorcionRequest) (*dto.PrecioPorcionResponse, error) {
	if !tiposPorcionPriced[tipo] {
		return nil, apierror.Validation("el tipo " + tipo + " no tiene precios por porción")
	}
	if _, err := s.repo.Find(ctx, tipo, componenteID); err != nil {
		return nil, notFoundOr(tipoErr(err), "Componente no encontrado")
	}

	// One price row per (component, portion count).
	if _, err := s.repo.FindPrecioPorcionTx(ctx, nil, tipo, componenteID, req.Porciones); err == nil {
		return nil, apierror.Conflict(fmt.Sprintf(
			"Ya existe un precio para %d porciones", req.Porciones))
	}

	pp := &model.PrecioPorcion{Porciones: req.Porciones, Precio: req.Precio}
	if err := s.repo.CreatePrecioPorcion(ctx, tipo, componenteID, pp); err != nil {
		return nil, tipoErr(err)
	}
	s.invalidarCachePrecios(ctx, tipo, componenteID.String())
	return &dto.PrecioPorcionResponse{
		ID:        pp.ID.String(),
		Porciones: pp.Porciones,
		Precio:    pp.Precio,
	}, nil
}

func (s *catalogoService) ActualizarPrecio(ctx context.Context, tipo string, id uuid.UUID, req dto.ActualizarPrecioPorcionRequest) (*dto.PrecioPorcionResponse, error) {
	pp, err := s.repo.FindPrecioPorcionPorID(ctx, tipo, id)
	if err != nil {
		return nil, notFoundOr(tipoErr(err), "Precio por porción no encontrado")
	}

	if req.Porciones != nil && *req.Porciones != pp.Porciones {
		// Moving the row to another portion count must not collide with an
		// existing (component, porciones) pair.
		if dup, err := s.repo.FindPrecioPorcionTx(ctx, nil, tipo, pp.ComponenteID, *req.Porciones); err == nil && dup.ID != pp.ID {
			return nil, apierror.Conflict(fmt.Sprintf(
				"Ya existe un precio para %d porciones", *req.Porciones))
		}
		pp.Porciones = *req.Porciones
	}
	if req.Precio != nil {
		pp.Precio = *req.Precio
	}

	if err := s.repo.UpdatePrecioPorcion(ctx, tipo, pp); err != nil {
		return nil, tipoErr(err)
	}
	s.invalidarCachePrecios(ctx, tipo, "*")
	return &dto.PrecioPorcionResponse{
		ID:        pp.ID.String(),
		Porciones: pp.Porciones,
		Precio:    pp.Precio,
	}, nil
}

func (s *catalogoService) EliminarPrecio(ctx context.Context, tipo string, id uuid.UUID) error {
	if _, err := s.repo.FindPrecioPorcionPorID(ctx, tipo, id); err != nil {
		return notFoundOr(tipoErr(err), "Precio por porción no encontrado")
	}
	if err := s.repo.DeletePrecioPorcion(ctx, tipo, id); err != nil {
		return tipoErr(err)
	}
	s.invalidarCachePrecios(ctx, tipo, "*")
	return nil
}

// invalidarCachePrecios drops cached public price lookups for a component.
// Best effort: a stale cache entry expires on its own TTL anyway.
func (s *catalogoService) invalidarCachePrecios(ctx context.Context, tipo, componenteID string) {
	if s.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("precio:%s:%s:*", tipo, componenteID)
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("no se pudo invalidar cache de precios")
		return
	}
	if len(keys) > 0 {
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("no se pudo borrar claves de cache de precios")
		}
	}
}
