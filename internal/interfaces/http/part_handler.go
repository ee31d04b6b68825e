package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

// PartHandler maneja las peticiones HTTP del catálogo de repuestos.
type PartHandler struct {
	uc *catalog.PartUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *catalog.PartUseCase) *PartHandler {
	return &PartHandler{uc: uc}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "name, category, quantity, unit_price"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

// Get godoc
// @Summary      Obtener repuesto por nombre
// @Tags         parts
// @Produce      json
// @Param        name  path  string  true  "nombre del repuesto (sensible a mayúsculas)"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{name} [get]
func (h *PartHandler) Get(c *fiber.Ctx) error {
	part, err := h.uc.Get(c.Context(), c.Params("name"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(part)
}

// Update godoc
// @Summary      Actualizar repuesto (parcial)
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string                 true  "nombre del repuesto"
// @Param        body  body  dto.UpdatePartRequest  true  "category?, quantity?, unit_price?"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{name} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.uc.Update(c.Context(), c.Params("name"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(part)
}

// Delete godoc
// @Summary      Eliminar repuesto (cascada)
// @Description  Elimina el repuesto y TODOS sus movimientos en una sola
//               transacción. Irreversible: destruye la historia del repuesto.
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "nombre del repuesto"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{name} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("name")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "repuesto y movimientos eliminados"})
}

// List godoc
// @Summary      Listar repuestos (ordenados por nombre)
// @Tags         parts
// @Produce      json
// @Success      200  {object}  dto.PartListResponse
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}
