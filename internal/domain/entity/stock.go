package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la existencia actual de un producto en una bodega.
// Par (ProductID, WarehouseID) único; Quantity nunca es negativa (el motor
// lo garantiza antes de cada débito y la tabla lo refuerza con un CHECK).
// Se crea perezosamente la primera vez que entra producto a la bodega y
// nunca se borra (la cantidad puede llegar a 0).
type StockRecord struct {
	ID          int64
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
