package handler

import (
	"net/http"

	"pasteleria/internal/dto"
	"pasteleria/internal/service"

	"github.com/gin-gonic/gin"
)

type DetalleTortasHandler struct{ svc service.TortaService }

func NewDetalleTortasHandler(svc service.TortaService) *DetalleTortasHandler {
	return &DetalleTortasHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear detalle de torta
// @Description  Construye una torta para un item de cotización existente de tipo torta que aún no tiene una, y reprecifica el item y la cotización.
// @Tags         detalle-tortas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearDetalleTortaRequest true "Item destino y especificación de la torta"
// @Success      201  {object} dto.DetalleTortaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/detalle-tortas [post]
func (h *DetalleTortasHandler) Crear(c *gin.Context) {
	var req dto.CrearDetalleTortaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener detalle de torta
// @Description  Retorna la composición completa de la torta con sus elementos, extras y decoraciones adicionales.
// @Tags         detalle-tortas
// @Produce      json
// @Param        id path string true "UUID del detalle de torta"
// @Success      200  {object} dto.DetalleTortaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/detalle-tortas/{id} [get]
func (h *DetalleTortasHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar detalle de torta
// @Description  Reconstruye la torta: re-resuelve snapshots de precio, reconcilia composiciones por ID de vínculo y reprecifica el item y la cotización.
// @Tags         detalle-tortas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del detalle de torta"
// @Param        body body dto.TortaSpec true "Nueva especificación"
// @Success      200  {object} dto.DetalleTortaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/detalle-tortas/{id} [put]
func (h *DetalleTortasHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var spec dto.TortaSpec
	if !bindAndValidate(c, &spec) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, spec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar detalle de torta
// @Description  Elimina la torta y la desvincula de su item, que queda con precio cero y nombre "Torta Eliminada".
// @Tags         detalle-tortas
// @Param        id path string true "UUID del detalle de torta"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/detalle-tortas/{id} [delete]
func (h *DetalleTortasHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
