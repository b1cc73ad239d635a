package handler

import (
	"net/http"

	"pasteleria/internal/dto"
	"pasteleria/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves CRUD for the eight catalog types under
// /v1/catalogo/:tipo, plus the portion-price sub-resource of the four
// portion-priced types.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar componentes de catálogo
// @Tags         catalogo
// @Produce      json
// @Param        tipo path string true "torta_base | cobertura | decoracion | elemento_decorativo | extra | mini_torta | postre | otro_producto"
// @Param        incluir_inactivos query bool false "Incluir componentes desactivados"
// @Success      200  {array}  dto.ComponenteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo} [get]
func (h *CatalogoHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), c.Param("tipo"), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener componente de catálogo
// @Tags         catalogo
// @Produce      json
// @Param        tipo path string true "Tipo de componente"
// @Param        id   path string true "UUID del componente"
// @Success      200  {object} dto.ComponenteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/{id} [get]
func (h *CatalogoHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear componente de catálogo
// @Description  Crea un componente. Precio directo solo aplica a tipos de precio plano; porciones solo a mini tortas.
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        tipo path string true "Tipo de componente"
// @Param        body body dto.CrearComponenteRequest true "Componente a crear"
// @Success      201  {object} dto.ComponenteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo} [post]
func (h *CatalogoHandler) Crear(c *gin.Context) {
	var req dto.CrearComponenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), c.Param("tipo"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar componente de catálogo
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        tipo path string true "Tipo de componente"
// @Param        id   path string true "UUID del componente"
// @Param        body body dto.ActualizarComponenteRequest true "Campos a actualizar"
// @Success      200  {object} dto.ComponenteResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/{id} [put]
func (h *CatalogoHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarComponenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("tipo"), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar componente de catálogo
// @Description  Desactiva el componente. Componentes referenciados por cotizaciones existentes no pueden eliminarse.
// @Tags         catalogo
// @Param        tipo path string true "Tipo de componente"
// @Param        id   path string true "UUID del componente"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/{id} [delete]
func (h *CatalogoHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("tipo"), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Portion prices ───────────────────────────────────────────────────────────

// ListarPrecios godoc
// @Summary      Listar precios por porción de un componente
// @Tags         catalogo
// @Produce      json
// @Param        tipo path string true "torta_base | cobertura | decoracion | mini_torta"
// @Param        id   path string true "UUID del componente"
// @Success      200  {array}  dto.PrecioPorcionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/{id}/precios [get]
func (h *CatalogoHandler) ListarPrecios(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPrecios(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearPrecio godoc
// @Summary      Crear precio por porción
// @Description  Alta de un precio para una cantidad exacta de porciones. Una sola fila por (componente, porciones).
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        tipo path string true "Tipo de componente"
// @Param        id   path string true "UUID del componente"
// @Param        body body dto.CrearPrecioPorcionRequest true "Precio a crear"
// @Success      201  {object} dto.PrecioPorcionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/{id}/precios [post]
func (h *CatalogoHandler) CrearPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearPrecioPorcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPrecio(c.Request.Context(), c.Param("tipo"), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarPrecio godoc
// @Summary      Actualizar precio por porción
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        tipo     path string true "Tipo de componente"
// @Param        precioId path string true "UUID del precio"
// @Param        body     body dto.ActualizarPrecioPorcionRequest true "Campos a actualizar"
// @Success      200  {object} dto.PrecioPorcionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/precios/{precioId} [put]
func (h *CatalogoHandler) ActualizarPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "precioId")
	if !ok {
		return
	}
	var req dto.ActualizarPrecioPorcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecio(c.Request.Context(), c.Param("tipo"), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarPrecio godoc
// @Summary      Eliminar precio por porción
// @Tags         catalogo
// @Param        tipo     path string true "Tipo de componente"
// @Param        precioId path string true "UUID del precio"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalogo/{tipo}/precios/{precioId} [delete]
func (h *CatalogoHandler) EliminarPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "precioId")
	if !ok {
		return
	}
	if err := h.svc.EliminarPrecio(c.Request.Context(), c.Param("tipo"), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
