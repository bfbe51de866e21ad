package stock

import (
	"context"
	"time"

	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor del
// ledger: si fn devuelve error, nada de lo hecho adentro sobrevive.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		auditRepo repository.StockAuditRepository,
		transferRepo repository.TransferRepository,
	) error) error
}

// MetricsRecorder registra el resultado de cada operación del ledger.
// La implementación Prometheus vive en infraestructura.
type MetricsRecorder interface {
	ObserveOperation(op string, start time.Time, err error)
}

// NopMetrics descarta las observaciones (tests, herramientas).
type NopMetrics struct{}

func (NopMetrics) ObserveOperation(string, time.Time, error) {}
