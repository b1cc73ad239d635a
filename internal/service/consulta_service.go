package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pasteleria/internal/dto"
	"pasteleria/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// precioCacheTTL bounds staleness of the public price check; mutations also
// invalidate eagerly.
const precioCacheTTL = 4 * time.Hour

// ConsultaService serves the public portion-price check, cached in Redis.
type ConsultaService interface {
	ConsultarPrecio(ctx context.Context, tipo string, componenteID uuid.UUID, porciones int) (*dto.ConsultaPrecioResponse, error)
}

type consultaService struct {
	catalogo repository.CatalogoRepository
	precios  PrecioService
	rdb      *redis.Client
}

func NewConsultaService(catalogo repository.CatalogoRepository, precios PrecioService, rdb *redis.Client) ConsultaService {
	return &consultaService{catalogo: catalogo, precios: precios, rdb: rdb}
}

func (s *consultaService) ConsultarPrecio(ctx context.Context, tipo string, componenteID uuid.UUID, porciones int) (*dto.ConsultaPrecioResponse, error) {
	key := fmt.Sprintf("precio:%s:%s:%d", tipo, componenteID, porciones)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	comp, err := s.catalogo.Find(ctx, tipo, componenteID)
	if err != nil {
		return nil, notFoundOr(tipoErr(err), "Componente no encontrado")
	}

	precio, err := s.precios.PrecioComponente(ctx, nil, tipo, componenteID, porciones)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConsultaPrecioResponse{
		Tipo:         tipo,
		ComponenteID: componenteID.String(),
		Nombre:       comp.Nombre,
		Porciones:    porciones,
		Precio:       precio,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, data, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear consulta de precio")
			}
		}
	}
	return resp, nil
}
