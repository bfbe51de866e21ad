package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL
// (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el encabezado y asigna su ID.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (from_warehouse_id, to_warehouse_id, user_id, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	notes := (*string)(nil)
	if t.Notes != "" {
		notes = &t.Notes
	}
	err := r.q.QueryRow(ctx, query,
		t.FromWarehouseID, t.ToWarehouseID, t.UserID, notes, t.Status, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return translateError(fmt.Errorf("create transfer: %w", err))
	}
	return nil
}

// AddDetail persiste una línea de detalle y asigna su ID.
func (r *TransferRepo) AddDetail(ctx context.Context, d *entity.TransferDetail) error {
	query := `
		INSERT INTO transfer_details (transfer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, d.TransferID, d.ProductID, d.Quantity).Scan(&d.ID)
	if err != nil {
		return translateError(fmt.Errorf("add transfer detail: %w", err))
	}
	return nil
}

// GetForUpdate obtiene y bloquea el encabezado. (nil, nil) si no existe.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Transfer, error) {
	query := `
		SELECT id, from_warehouse_id, to_warehouse_id, user_id, COALESCE(notes, ''), status, created_at
		FROM transfers WHERE id = $1
		FOR UPDATE`
	var t entity.Transfer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.UserID, &t.Notes, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(fmt.Errorf("get transfer for update: %w", err))
	}
	return &t, nil
}

// SetStatus actualiza el estado del encabezado.
func (r *TransferRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE transfers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return translateError(fmt.Errorf("set transfer status: %w", err))
	}
	return nil
}
