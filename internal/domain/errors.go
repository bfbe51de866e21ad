package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura). Cada operación
// del ledger falla con exactamente uno de estos; la capa HTTP los traduce a
// códigos estables y la capa Postgres traduce errores del motor hacia aquí.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidOperation  = errors.New("operación inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrWarehouseMismatch = errors.New("el stock no pertenece a la bodega indicada")
	ErrAlreadyCompleted  = errors.New("la transferencia ya fue completada")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrBusy              = errors.New("conflicto de concurrencia, reintentar")
)

// InsufficientStockError detalla un quiebre de stock: qué producto, cuánto
// había y cuánto se pidió. Satisface errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %s, solicitado %s",
		e.ProductID, e.Available, e.Requested)
}

// Unwrap permite tratar el error detallado como ErrInsufficientStock.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
