package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
)

// StockHandler maneja las peticiones HTTP de los libros de entradas y salidas.
// Toda mutación pasa por el motor de reconciliación (StockUseCase).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateStockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "part_name, quantity > 0, date YYYY-MM-DD"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mv, err := h.uc.CreateStockIn(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mv)
}

// UpdateStockIn godoc
// @Summary      Editar entrada de stock (cantidad y fecha)
// @Description  Re-deriva la cantidad del repuesto. Falla 422 si el resultado
//               quedaría negativo; el movimiento no cambia de repuesto.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id del movimiento"
// @Param        body  body  dto.UpdateStockInRequest  true  "quantity > 0, date YYYY-MM-DD"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [put]
func (h *StockHandler) UpdateStockIn(c *fiber.Ctx) error {
	var in dto.UpdateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStockIn(c.Context(), c.Params("id"), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada actualizada"})
}

// DeleteStockIn godoc
// @Summary      Eliminar entrada de stock
// @Description  Revierte el efecto de la entrada. Falla 422 si quitarla
//               dejaría la cantidad del repuesto en negativo.
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [delete]
func (h *StockHandler) DeleteStockIn(c *fiber.Ctx) error {
	if err := h.uc.DeleteStockIn(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada eliminada"})
}

// ListStockIn godoc
// @Summary      Listar entradas de stock
// @Tags         stock-in
// @Produce      json
// @Param        part    query  string  false  "filtrar por repuesto"
// @Param        date    query  string  false  "filtrar por fecha YYYY-MM-DD"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockInListResponse
// @Router       /api/stock-in [get]
func (h *StockHandler) ListStockIn(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	list, err := h.uc.ListStockIn(c.Context(), q)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// CreateStockOut godoc
// @Summary      Registrar salida de stock
// @Description  Exige stock disponible. El precio unitario queda como snapshot
//               histórico, independiente del precio actual del catálogo.
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "part_name, quantity > 0, unit_price >= 0, date YYYY-MM-DD"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *StockHandler) CreateStockOut(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mv, err := h.uc.CreateStockOut(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mv)
}

// UpdateStockOut godoc
// @Summary      Editar salida de stock (cantidad, precio y fecha)
// @Description  Re-deriva la cantidad del repuesto (aumentar la salida reduce
//               el disponible). El precio reemplaza el snapshot sin condiciones.
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "id del movimiento"
// @Param        body  body  dto.UpdateStockOutRequest  true  "quantity > 0, unit_price >= 0, date"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [put]
func (h *StockHandler) UpdateStockOut(c *fiber.Ctx) error {
	var in dto.UpdateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStockOut(c.Context(), c.Params("id"), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salida actualizada"})
}

// DeleteStockOut godoc
// @Summary      Eliminar salida de stock
// @Description  Siempre legal: borrar una venta devuelve el stock al repuesto.
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [delete]
func (h *StockHandler) DeleteStockOut(c *fiber.Ctx) error {
	if err := h.uc.DeleteStockOut(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salida eliminada"})
}

// ListStockOut godoc
// @Summary      Listar salidas de stock
// @Tags         stock-out
// @Produce      json
// @Param        part    query  string  false  "filtrar por repuesto"
// @Param        date    query  string  false  "filtrar por fecha YYYY-MM-DD"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockOutListResponse
// @Router       /api/stock-out [get]
func (h *StockHandler) ListStockOut(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	list, err := h.uc.ListStockOut(c.Context(), q)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}
