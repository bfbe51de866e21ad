package repository

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// ProductRepository define el puerto de consulta de productos (DIP).
// El ledger no administra productos; solo resuelve existencia y nombre.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
