package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// StockAuditRepository define el puerto del registro de auditoría.
// Solo inserciones: las entradas jamás se actualizan ni se borran.
type StockAuditRepository interface {
	// Append persiste la entrada y asigna su ID.
	Append(ctx context.Context, audit *entity.StockAudit) error
	// SumByStock devuelve la suma de los cambios registrados para un stock
	// (invariante de reconciliación: debe igualar la cantidad actual).
	SumByStock(ctx context.Context, stockID int64) (decimal.Decimal, error)
	// ListByStock devuelve el historial completo de un stock, más reciente primero.
	ListByStock(ctx context.Context, stockID int64, limit, offset int) ([]*entity.StockAudit, error)
}
