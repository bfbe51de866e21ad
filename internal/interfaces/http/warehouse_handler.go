package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// WarehouseHandler listado de bodegas (solo lectura; el ledger no las administra).
type WarehouseHandler struct {
	warehouses repository.WarehouseRepository
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(warehouses repository.WarehouseRepository) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

// List godoc
// @Summary      Listar bodegas (id y nombre)
// @Tags         warehouses
// @Produce      json
// @Success      200  {array}   dto.WarehouseRef
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	list, err := h.warehouses.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.WarehouseRef, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseRef{ID: w.ID, Name: w.Name})
	}
	return c.JSON(out)
}
