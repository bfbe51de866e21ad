package repository

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para transferencias y
// sus líneas de detalle.
type TransferRepository interface {
	// Create persiste el encabezado (status PENDING) y asigna su ID.
	Create(ctx context.Context, transfer *entity.Transfer) error
	// AddDetail persiste una línea de detalle y asigna su ID.
	AddDetail(ctx context.Context, detail *entity.TransferDetail) error
	// GetForUpdate obtiene y bloquea el encabezado. (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Transfer, error)
	// SetStatus actualiza el estado del encabezado.
	SetStatus(ctx context.Context, id int64, status string) error
}
