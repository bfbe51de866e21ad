package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Causas de un cambio de existencias.
const (
	AuditReasonTransferOut = "TRANSFER_OUT" // débito en bodega origen
	AuditReasonTransferIn  = "TRANSFER_IN"  // crédito en bodega destino
	AuditReasonWithdrawal  = "WITHDRAWAL"   // retiro terminal del sistema
)

// StockAudit es un hecho inmutable: un delta firmado aplicado a un StockRecord,
// con su causa y el usuario que lo provocó. Solo se agrega, nunca se actualiza
// ni se borra. La suma de los Change de un StockRecord debe reconstruir su
// Quantity actual.
type StockAudit struct {
	ID         int64
	StockID    int64
	Change     decimal.Decimal // negativo débito, positivo crédito
	Reason     string
	TransferID *int64 // presente solo si la causa fue una transferencia
	UserID     string
	CreatedAt  time.Time
}
