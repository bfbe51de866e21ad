package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/stock"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// LedgerService operaciones mutadoras del ledger que consume el handler.
type LedgerService interface {
	CreateTransfer(ctx context.Context, input stock.CreateTransferInput) (*repository.TransferView, error)
	CompleteTransfer(ctx context.Context, transferID int64) (*repository.TransferView, error)
	WithdrawStock(ctx context.Context, input stock.WithdrawInput) (*entity.StockRecord, error)
}

// StockQueryService proyecciones de solo lectura que consume el handler.
type StockQueryService interface {
	ListStock(ctx context.Context) ([]repository.StockViewRow, error)
	ListTransfers(ctx context.Context) ([]*repository.TransferView, error)
}

// StockHandler maneja las peticiones HTTP del ledger de existencias.
type StockHandler struct {
	ledger LedgerService
	query  StockQueryService
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger LedgerService, query StockQueryService) *StockHandler {
	return &StockHandler{ledger: ledger, query: query}
}

// CreateTransfer godoc
// @Summary      Crear transferencia de stock entre bodegas
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_warehouse_id, to_warehouse_id, user_id, notes, details[]"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/create-transfer [post]
func (h *StockHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]stock.TransferLineInput, 0, len(in.Details))
	for _, d := range in.Details {
		lines = append(lines, stock.TransferLineInput{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	view, err := h.ledger.CreateTransfer(c.Context(), stock.CreateTransferInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		UserID:          in.UserID,
		Notes:           in.Notes,
		Lines:           lines,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransferView(view))
}

// ListTransfers godoc
// @Summary      Listar transferencias (más reciente primero)
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.TransferResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/all-transfer [get]
func (h *StockHandler) ListTransfers(c *fiber.Ctx) error {
	views, err := h.query.ListTransfers(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromTransferView(v))
	}
	return c.JSON(out)
}

// CompleteTransfer godoc
// @Summary      Marcar una transferencia como completada
// @Tags         stock
// @Produce      json
// @Param        id   path      int  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/complete-transfer/{id} [patch]
func (h *StockHandler) CompleteTransfer(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	view, err := h.ledger.CompleteTransfer(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromTransferView(view))
}

// Withdraw godoc
// @Summary      Retirar stock de una bodega (retiro terminal)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawStockRequest  true  "warehouse_id, stock_id, quantity, user_id"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/withdraw [post]
func (h *StockHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.ledger.WithdrawStock(c.Context(), stock.WithdrawInput{
		WarehouseID: in.WarehouseID,
		StockID:     in.StockID,
		Quantity:    in.Quantity,
		UserID:      in.UserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromStockRecord(record))
}

// ListStock godoc
// @Summary      Vista aplanada de existencias por producto y bodega
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.StockRowResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/view [get]
func (h *StockHandler) ListStock(c *fiber.Ctx) error {
	rows, err := h.query.ListStock(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromStockViewRows(rows))
}

// writeDomainError traduce el error de dominio a un código estable. Los
// errores del motor de almacenamiento nunca llegan crudos al caller.
func writeDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidOperation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OPERATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrWarehouseMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WAREHOUSE_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_COMPLETED", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
