package handler

import (
	"net/http"
	"strconv"

	"pasteleria/internal/apierror"
	"pasteleria/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaPreciosHandler serves the public portion-price check. No auth;
// responses come from a Redis cache when warm.
type ConsultaPreciosHandler struct{ svc service.ConsultaService }

func NewConsultaPreciosHandler(svc service.ConsultaService) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc}
}

// ConsultarPrecio godoc
// @Summary      Consultar precio por porciones
// @Description  Retorna el precio de un componente porcionado para una cantidad exacta de porciones. Sin interpolación: si no hay fila para esa cantidad, 404.
// @Tags         consulta
// @Produce      json
// @Param        tipo      path string true "torta_base | cobertura | decoracion | mini_torta"
// @Param        id        path string true "UUID del componente"
// @Param        porciones path int    true "Cantidad exacta de porciones"
// @Success      200  {object} dto.ConsultaPrecioResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/precio/{tipo}/{id}/{porciones} [get]
func (h *ConsultaPreciosHandler) ConsultarPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	porciones, err := strconv.Atoi(c.Param("porciones"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("porciones debe ser un entero"))
		return
	}
	resp, err := h.svc.ConsultarPrecio(c.Request.Context(), c.Param("tipo"), id, porciones)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
