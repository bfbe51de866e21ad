package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// StockRepository define el puerto del almacén de existencias. Todas las
// lecturas destinadas a mutación bloquean la fila (SELECT FOR UPDATE) para
// serializar escritores concurrentes sobre el mismo par (producto, bodega);
// deben invocarse dentro de la transacción activa del TxRunner.
type StockRepository interface {
	// GetForUpdate obtiene y bloquea el stock de un producto en una bodega.
	// Devuelve (nil, nil) si la fila no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error)
	// GetByIDForUpdate obtiene y bloquea un stock por su id. (nil, nil) si no existe.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.StockRecord, error)
	// GetOrCreateForUpdate obtiene la fila bloqueada, creándola con cantidad 0
	// si no existe. El insert-si-ausente ocurre dentro de la misma transacción
	// (ON CONFLICT), nunca como read-then-write separado.
	GetOrCreateForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error)
	// ApplyDelta suma delta (puede ser negativo) a la cantidad de la fila ya
	// bloqueada y devuelve el registro actualizado.
	ApplyDelta(ctx context.Context, stockID int64, delta decimal.Decimal, at time.Time) (*entity.StockRecord, error)
}
