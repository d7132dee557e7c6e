package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP para items (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create crea un item.
// POST /api/items → 201 Item | 400 | 401.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.Context(), in, GetUID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return respondInternal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List lista items con filtros opcionales.
// GET /api/items?categoria=&createdBy=&limit= → 200 Item[].
// createdBy solo se honra para admin; limit se acota a 1–100 (default 10).
func (h *ItemHandler) List(c *fiber.Ctx) error {
	filter := dto.ListItemsFilter{
		Categoria: c.Query("categoria"),
		CreatedBy: c.Query("createdBy"),
	}
	limit := dto.ClampLimit(c.QueryInt("limit", 0))
	items, err := h.uc.ListAll(c.Context(), filter, GetUID(c), GetRole(c), limit)
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(items)
}

// GetByID obtiene un item puntual.
// GET /api/items/:id → 200 Item | 403 | 404.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.uc.GetByID(c.Context(), id, GetUID(c), GetRole(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para ver este item"})
		}
		return respondInternal(c, err)
	}
	return c.JSON(item)
}

// Update actualiza parcialmente un item.
// PUT /api/items/:id → 200 Item | 400 | 403 | 404.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(c.Context(), id, in, GetUID(c), GetRole(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para editar este item"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return respondInternal(c, err)
	}
	return c.JSON(item)
}

// Delete elimina un item (borrado duro).
// DELETE /api/items/:id → 200 {message, id} | 403 | 404.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id, GetUID(c), GetRole(c)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para eliminar este item"})
		}
		return respondInternal(c, err)
	}
	return c.JSON(dto.DeleteItemResponse{Message: "item eliminado correctamente", ID: id})
}

// Search busca por igualdad en un único campo del allow-list.
// GET /api/items/search?field=&value=&limit= → 200 Item[] | 400.
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	field := c.Query("field")
	value := c.Query("value")
	limit := dto.ClampLimit(c.QueryInt("limit", 0))
	items, err := h.uc.SearchByField(c.Context(), field, value, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return respondInternal(c, err)
	}
	return c.JSON(items)
}
