package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// CreateTransferRequest body para POST /api/stock/create-transfer.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	UserID          string                `json:"user_id"`
	Notes           string                `json:"notes,omitempty"`
	Details         []TransferLineRequest `json:"details"`
}

// TransferLineRequest una línea de la transferencia, direccionada por producto.
type TransferLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// WithdrawStockRequest body para POST /api/stock/withdraw.
type WithdrawStockRequest struct {
	WarehouseID string          `json:"warehouse_id"`
	StockID     int64           `json:"stock_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UserID      string          `json:"user_id"`
}

// TransferResponse transferencia aplanada con nombres resueltos.
type TransferResponse struct {
	ID            int64                    `json:"id"`
	FromWarehouse WarehouseRef             `json:"from_warehouse"`
	ToWarehouse   WarehouseRef             `json:"to_warehouse"`
	UserID        string                   `json:"user_id"`
	UserName      string                   `json:"user_name"`
	Notes         string                   `json:"notes,omitempty"`
	Status        string                   `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	Details       []TransferDetailResponse `json:"details"`
}

// WarehouseRef referencia mínima a una bodega (id + nombre).
type WarehouseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransferDetailResponse línea de transferencia con producto resuelto.
type TransferDetailResponse struct {
	ID          int64           `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockRowResponse fila de la vista de existencias. La clave estable es
// stock_id (un producto puede tener una fila por bodega).
type StockRowResponse struct {
	StockID       int64           `json:"stock_id"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockRecordResponse estado de un stock tras un retiro.
type StockRecordResponse struct {
	StockID     int64           `json:"stock_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromTransferView mapea la proyección de dominio a la respuesta HTTP.
func FromTransferView(v *repository.TransferView) TransferResponse {
	details := make([]TransferDetailResponse, 0, len(v.Details))
	for _, d := range v.Details {
		details = append(details, TransferDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			SKU:         d.SKU,
			Quantity:    d.Quantity,
		})
	}
	return TransferResponse{
		ID:            v.ID,
		FromWarehouse: WarehouseRef{ID: v.FromWarehouseID, Name: v.FromWarehouseName},
		ToWarehouse:   WarehouseRef{ID: v.ToWarehouseID, Name: v.ToWarehouseName},
		UserID:        v.UserID,
		UserName:      v.UserName,
		Notes:         v.Notes,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		Details:       details,
	}
}

// FromStockViewRows mapea la vista de existencias a la respuesta HTTP.
func FromStockViewRows(rows []repository.StockViewRow) []StockRowResponse {
	out := make([]StockRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StockRowResponse{
			StockID:       r.StockID,
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.ProductName,
			CategoryName:  r.CategoryName,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return out
}

// FromStockRecord mapea la entidad al cuerpo de respuesta de un retiro.
func FromStockRecord(s *entity.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		StockID:     s.ID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UpdatedAt:   s.UpdatedAt,
	}
}
