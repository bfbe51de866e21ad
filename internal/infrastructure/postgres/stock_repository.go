package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas para mutación bloquean la fila (SELECT FOR UPDATE).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el stock de un producto en una bodega y bloquea la
// fila para update. Devuelve (nil, nil) si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(fmt.Errorf("get stock for update: %w", err))
	}
	return &s, nil
}

// GetByIDForUpdate obtiene el stock por id y bloquea la fila. (nil, nil) si no existe.
func (r *StockRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE id = $1
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(fmt.Errorf("get stock by id for update: %w", err))
	}
	return &s, nil
}

// GetOrCreateForUpdate obtiene la fila bloqueada, creándola con cantidad 0 si
// no existe. Insert-si-ausente bajo la misma transacción: el ON CONFLICT con
// DO UPDATE no-op garantiza que RETURNING siempre devuelva la fila ya
// bloqueada, sin ventana read-then-write frente a escritores concurrentes.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity
		RETURNING id, product_id, warehouse_id, quantity, updated_at`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("get or create stock: %w", err))
	}
	return &s, nil
}

// ApplyDelta suma delta (negativo = débito) a la fila ya bloqueada y devuelve
// el registro actualizado. El CHECK quantity >= 0 de la tabla respalda la
// validación que el motor hizo bajo el bloqueo.
func (r *StockRepo) ApplyDelta(ctx context.Context, stockID int64, delta decimal.Decimal, at time.Time) (*entity.StockRecord, error) {
	query := `
		UPDATE stock SET quantity = quantity + $2, updated_at = $3
		WHERE id = $1
		RETURNING id, product_id, warehouse_id, quantity, updated_at`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, stockID, delta, at).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("apply delta: stock %d no existe", stockID)
		}
		return nil, translateError(fmt.Errorf("apply delta: %w", err))
	}
	return &s, nil
}
