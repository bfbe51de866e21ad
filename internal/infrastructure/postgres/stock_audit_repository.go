package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.StockAuditRepository = (*StockAuditRepo)(nil)

// StockAuditRepo implementación del registro de auditoría sobre PostgreSQL.
// Solo inserta: no existe Update ni Delete sobre stock_audits.
type StockAuditRepo struct {
	q Querier
}

// NewStockAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAuditRepository(q Querier) *StockAuditRepo {
	return &StockAuditRepo{q: q}
}

// Append persiste la entrada de auditoría y asigna su ID.
func (r *StockAuditRepo) Append(ctx context.Context, audit *entity.StockAudit) error {
	query := `
		INSERT INTO stock_audits (stock_id, change, reason, transfer_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		audit.StockID, audit.Change, audit.Reason, audit.TransferID,
		audit.UserID, audit.CreatedAt,
	).Scan(&audit.ID)
	if err != nil {
		return translateError(fmt.Errorf("append stock audit: %w", err))
	}
	return nil
}

// SumByStock suma los cambios registrados para un stock. Para un ledger sano
// el resultado iguala la cantidad actual de la fila.
func (r *StockAuditRepo) SumByStock(ctx context.Context, stockID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(change), 0) FROM stock_audits WHERE stock_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, stockID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock audits: %w", err)
	}
	return sum, nil
}

// ListByStock historial de un stock, más reciente primero.
func (r *StockAuditRepo) ListByStock(ctx context.Context, stockID int64, limit, offset int) ([]*entity.StockAudit, error) {
	query := `
		SELECT id, stock_id, change, reason, transfer_id, user_id, created_at
		FROM stock_audits WHERE stock_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAudit
	for rows.Next() {
		var a entity.StockAudit
		if err := rows.Scan(&a.ID, &a.StockID, &a.Change, &a.Reason, &a.TransferID, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
