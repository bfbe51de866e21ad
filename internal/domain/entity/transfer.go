package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del encabezado de una transferencia.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
)

// Transfer es el encabezado de un traslado multi-línea entre dos bodegas.
// El movimiento de stock se aplica al crearla; el paso a COMPLETED es un
// cierre administrativo posterior (confirmación de recibo físico) y ocurre
// exactamente una vez.
type Transfer struct {
	ID              int64
	FromWarehouseID string
	ToWarehouseID   string
	UserID          string
	Notes           string
	Status          string
	CreatedAt       time.Time
	Details         []TransferDetail
}

// TransferDetail es una línea de la transferencia: cantidad de un producto.
// Inmutable después de creada; pertenece en exclusiva a su Transfer.
type TransferDetail struct {
	ID         int64
	TransferID int64
	ProductID  string
	Quantity   decimal.Decimal
}
