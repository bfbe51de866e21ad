package stock

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// QueryUseCase expone las proyecciones de solo lectura (stock aplanado y
// transferencias con nombres resueltos). Es deliberadamente independiente de
// LedgerUseCase: la forma de lectura nunca participa en las transacciones de
// escritura.
type QueryUseCase struct {
	viewRepo repository.StockViewRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(viewRepo repository.StockViewRepository) *QueryUseCase {
	return &QueryUseCase{viewRepo: viewRepo}
}

// ListStock devuelve una fila por par (producto, bodega), con nombres de
// producto, categoría y bodega. La clave estable es el id del stock.
func (uc *QueryUseCase) ListStock(ctx context.Context) ([]repository.StockViewRow, error) {
	return uc.viewRepo.ListStock(ctx)
}

// ListTransfers devuelve los encabezados con sus detalles, más reciente primero.
func (uc *QueryUseCase) ListTransfers(ctx context.Context) ([]*repository.TransferView, error) {
	return uc.viewRepo.ListTransfers(ctx)
}

// GetTransfer devuelve una transferencia aplanada por id.
func (uc *QueryUseCase) GetTransfer(ctx context.Context, id int64) (*repository.TransferView, error) {
	view, err := uc.viewRepo.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
