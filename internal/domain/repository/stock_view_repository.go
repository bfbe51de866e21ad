package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockViewRow es una fila aplanada de la vista de existencias: stock +
// producto + categoría + bodega. La clave estable es StockID (un producto
// puede tener una fila por bodega).
type StockViewRow struct {
	StockID       int64
	ProductID     string
	SKU           string
	ProductName   string
	CategoryName  string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
	UpdatedAt     time.Time
}

// TransferView es un encabezado de transferencia con nombres resueltos y sus
// líneas de detalle, listo para consumo externo.
type TransferView struct {
	ID                int64
	FromWarehouseID   string
	FromWarehouseName string
	ToWarehouseID     string
	ToWarehouseName   string
	UserID            string
	UserName          string
	Notes             string
	Status            string
	CreatedAt         time.Time
	Details           []TransferViewDetail
}

// TransferViewDetail línea de transferencia con nombre de producto resuelto.
type TransferViewDetail struct {
	ID          int64
	ProductID   string
	ProductName string
	SKU         string
	Quantity    decimal.Decimal
}

// StockViewRepository define el puerto de solo lectura para las proyecciones.
// Es independiente de las operaciones mutadoras del ledger: corre sobre el
// pool, nunca dentro de una transacción de escritura.
type StockViewRepository interface {
	ListStock(ctx context.Context) ([]StockViewRow, error)
	ListTransfers(ctx context.Context) ([]*TransferView, error)
	GetTransfer(ctx context.Context, id int64) (*TransferView, error)
}
