package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/application/inventory"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/pkg/validate"
)

// ItemHandler maneja el CRUD de artículos de inventario.
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler de inventario.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// AddStock godoc
// @Summary      Agregar lote de stock (crea o fusiona)
// @Description  Si ya existe un artículo del dueño con el mismo (item_name, stock_unit) sin distinguir mayúsculas, el lote se fusiona con costo promedio ponderado; si no, se crea el artículo.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "lote a agregar"
// @Success      200   {object}  dto.ItemResponse  "lote fusionado en artículo existente"
// @Success      201   {object}  dto.ItemResponse  "artículo creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *ItemHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	item, created, err := h.uc.AddOrMergeStock(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote inválido: nombre/unidad requeridos, cantidad y precios no negativos"})
		case domain.ErrConflict:
			// Carrera crear-vs-crear detectada por el índice único; reintentar.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el artículo fue creado concurrentemente, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(item)
	}
	return c.JSON(item)
}

// List godoc
// @Summary      Listar artículos del dueño
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un artículo
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar campos de un artículo
// @Description  Parche parcial: solo los campos presentes se modifican. La cantidad nunca se acepta por esta vía. Un parche sin cambios efectivos no toca updated_at.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UpdateItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	item, changed, err := h.uc.UpdateFields(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parche inválido: nombre/unidad no vacíos, precio no negativo, factor positivo"})
		}
		return itemError(c, err)
	}
	msg := "artículo actualizado"
	if !changed {
		msg = "sin cambios"
	}
	return c.JSON(dto.UpdateItemResponse{Changed: changed, Message: msg, Item: *item})
}

// Delete godoc
// @Summary      Eliminar un artículo
// @Description  Las ventas históricas del artículo se conservan: guardan su propio snapshot de nombre y unidad.
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(GetUserID(c), id); err != nil {
		return itemError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "artículo eliminado", DeletedID: id})
}

// itemError mapea errores de dominio comunes del recurso artículo.
func itemError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el artículo no existe"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el artículo pertenece a otro usuario"})
	case domain.ErrDuplicate, domain.ErrConflict:
		// Un parche puede chocar con la llave única (owner, nombre, unidad)
		// de otro artículo del mismo dueño.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "ya existe un artículo del dueño con ese nombre y unidad de stock"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
