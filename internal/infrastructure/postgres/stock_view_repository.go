package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.StockViewRepository = (*StockViewRepo)(nil)

// StockViewRepo proyecciones de solo lectura (stock aplanado, transferencias
// con nombres resueltos). Corre sobre el pool, fuera de toda transacción de
// escritura.
type StockViewRepo struct {
	q Querier
}

// NewStockViewRepository construye el adaptador de proyecciones.
func NewStockViewRepository(q Querier) *StockViewRepo {
	return &StockViewRepo{q: q}
}

// ListStock une cada stock con producto, categoría y bodega; una fila por
// par (producto, bodega), clave estable el id del stock.
func (r *StockViewRepo) ListStock(ctx context.Context) ([]repository.StockViewRow, error) {
	query := `
		SELECT s.id, p.id, p.sku, p.name, COALESCE(c.name, ''), w.id, w.name, s.quantity, s.updated_at
		FROM stock s
		JOIN products p   ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		JOIN warehouses w ON w.id = s.warehouse_id
		ORDER BY w.name, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock view: %w", err)
	}
	defer rows.Close()
	var list []repository.StockViewRow
	for rows.Next() {
		var v repository.StockViewRow
		if err := rows.Scan(
			&v.StockID, &v.ProductID, &v.SKU, &v.ProductName, &v.CategoryName,
			&v.WarehouseID, &v.WarehouseName, &v.Quantity, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock view: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListTransfers encabezados con nombres resueltos y detalles, más reciente primero.
func (r *StockViewRepo) ListTransfers(ctx context.Context) ([]*repository.TransferView, error) {
	query := `
		SELECT t.id, t.from_warehouse_id, wf.name, t.to_warehouse_id, wt.name,
		       t.user_id, u.name, COALESCE(t.notes, ''), t.status, t.created_at
		FROM transfers t
		JOIN warehouses wf ON wf.id = t.from_warehouse_id
		JOIN warehouses wt ON wt.id = t.to_warehouse_id
		JOIN users u       ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransferView
	byID := make(map[int64]*repository.TransferView)
	for rows.Next() {
		var v repository.TransferView
		if err := rows.Scan(
			&v.ID, &v.FromWarehouseID, &v.FromWarehouseName, &v.ToWarehouseID, &v.ToWarehouseName,
			&v.UserID, &v.UserName, &v.Notes, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &v)
		byID[v.ID] = &v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	details, err := r.detailsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, ds := range details {
		byID[id].Details = ds
	}
	return list, nil
}

// GetTransfer una transferencia aplanada por id. (nil, nil) si no existe.
func (r *StockViewRepo) GetTransfer(ctx context.Context, id int64) (*repository.TransferView, error) {
	query := `
		SELECT t.id, t.from_warehouse_id, wf.name, t.to_warehouse_id, wt.name,
		       t.user_id, u.name, COALESCE(t.notes, ''), t.status, t.created_at
		FROM transfers t
		JOIN warehouses wf ON wf.id = t.from_warehouse_id
		JOIN warehouses wt ON wt.id = t.to_warehouse_id
		JOIN users u       ON u.id = t.user_id
		WHERE t.id = $1`
	var v repository.TransferView
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.FromWarehouseID, &v.FromWarehouseName, &v.ToWarehouseID, &v.ToWarehouseName,
		&v.UserID, &v.UserName, &v.Notes, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer view: %w", err)
	}
	details, err := r.detailsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	v.Details = details[id]
	return &v, nil
}

// detailsFor carga las líneas (con producto resuelto) de un lote de transferencias.
func (r *StockViewRepo) detailsFor(ctx context.Context, transferIDs []int64) (map[int64][]repository.TransferViewDetail, error) {
	query := `
		SELECT d.id, d.transfer_id, d.product_id, p.name, p.sku, d.quantity
		FROM transfer_details d
		JOIN products p ON p.id = d.product_id
		WHERE d.transfer_id = ANY($1)
		ORDER BY d.id`
	rows, err := r.q.Query(ctx, query, transferIDs)
	if err != nil {
		return nil, fmt.Errorf("list transfer details: %w", err)
	}
	defer rows.Close()
	out := make(map[int64][]repository.TransferViewDetail)
	for rows.Next() {
		var d repository.TransferViewDetail
		var transferID int64
		if err := rows.Scan(&d.ID, &transferID, &d.ProductID, &d.ProductName, &d.SKU, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer detail: %w", err)
		}
		out[transferID] = append(out[transferID], d)
	}
	return out, rows.Err()
}
