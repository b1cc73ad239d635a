package handler

import (
	"net/http"

	"pasteleria/internal/apierror"
	"pasteleria/internal/dto"
	"pasteleria/internal/service"

	"github.com/gin-gonic/gin"
)

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear cotización
// @Description  Crea una cotización en estado PENDIENTE con sus items iniciales en una única transacción. Las tortas inline se construyen con snapshot de precios.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearCotizacionRequest true "Cotización a crear"
// @Success      201  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones [post]
func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
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
// @Summary      Obtener cotización
// @Description  Retorna la cotización con items, detalle de tortas e historial de estados.
// @Tags         cotizaciones
// @Produce      json
// @Param        id path string true "UUID de la cotización"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [get]
func (h *CotizacionesHandler) Obtener(c *gin.Context) {
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

// Listar godoc
// @Summary      Listar cotizaciones
// @Description  Lista paginada, filtrable por estado, sucursal, usuario creador, rango de fechas y nombre del cliente.
// @Tags         cotizaciones
// @Produce      json
// @Param        estado          query string false "PENDIENTE | APROBADA | RECHAZADA | COMPLETADA | CANCELADA"
// @Param        sucursal_id     query string false "UUID de sucursal"
// @Param        cliente_nombre  query string false "Fragmento del nombre del cliente"
// @Param        fecha_desde     query string false "YYYY-MM-DD inclusive"
// @Param        fecha_hasta     query string false "YYYY-MM-DD inclusive"
// @Param        page            query int    false "Página (default 1)"
// @Param        limit           query int    false "Registros por página (default 50)"
// @Success      200  {object} dto.CotizacionListResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones [get]
func (h *CotizacionesHandler) Listar(c *gin.Context) {
	var filter dto.CotizacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary      Buscar cotizaciones por nombre de torta
// @Description  Retorna las cotizaciones que contienen al menos un item de torta cuyo nombre coincide con el fragmento dado.
// @Tags         cotizaciones
// @Produce      json
// @Param        nombre_torta query string true "Fragmento del nombre de la torta"
// @Success      200  {array}  dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/buscar [get]
func (h *CotizacionesHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("nombre_torta"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar cabecera de cotización
// @Description  Actualiza cliente, fecha de evento, observaciones o sucursal. Los items se modifican por sus propios endpoints.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ActualizarCotizacionRequest true "Campos a actualizar"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [put]
func (h *CotizacionesHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de cotización
// @Description  Cualquier estado puede pasar a cualquier otro; cada cambio agrega una fila al historial.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ActualizarEstadoRequest true "Nuevo estado"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/estado [put]
func (h *CotizacionesHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary      Agregar item a cotización
// @Description  Agrega una torta (existente o inline) o un producto plano. El total de la cotización se recalcula en la misma transacción.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ItemCotizacionRequest true "Item a agregar"
// @Success      201  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/items [post]
func (h *CotizacionesHandler) AgregarItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ItemCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarItem godoc
// @Summary      Actualizar item de cotización
// @Description  Cambia cantidad o nombre, o reconstruye la torta del item desde una nueva especificación.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del item"
// @Param        body body dto.ActualizarItemRequest true "Campos a actualizar"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/items-cotizacion/{id} [put]
func (h *CotizacionesHandler) ActualizarItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarItem godoc
// @Summary      Eliminar item de cotización
// @Description  Elimina el item; si es una torta, su detalle y composiciones se eliminan en cascada. El total se recalcula.
// @Tags         cotizaciones
// @Produce      json
// @Param        id path string true "UUID del item"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/items-cotizacion/{id} [delete]
func (h *CotizacionesHandler) EliminarItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EliminarItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarItems godoc
// @Summary      Listar items de cotización
// @Description  Lista items filtrables por cotización, nombre de producto y tipo.
// @Tags         cotizaciones
// @Produce      json
// @Param        cotizacion_id   query string false "UUID de la cotización"
// @Param        nombre_producto query string false "Fragmento del nombre"
// @Param        tipo_producto   query string false "torta | mini_torta | postre | otro_producto"
// @Success      200  {array}  dto.ItemCotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items-cotizacion [get]
func (h *CotizacionesHandler) ListarItems(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary      Descargar PDF de cotización
// @Tags         cotizaciones
// @Produce      application/pdf
// @Param        id path string true "UUID de la cotización"
// @Success      200
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/pdf [get]
func (h *CotizacionesHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "cotizacion.pdf")
}

// Enviar godoc
// @Summary      Enviar cotización por email
// @Description  Encola el envío asíncrono del PDF al email del cliente (o al indicado en el cuerpo).
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.EnviarCotizacionRequest false "Email de destino opcional"
// @Success      202
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/enviar [post]
func (h *CotizacionesHandler) Enviar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EnviarCotizacionRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	if err := h.svc.EnviarPorEmail(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
