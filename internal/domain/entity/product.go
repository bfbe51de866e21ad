package entity

import "time"

// Product representa un producto o SKU del catálogo. El ledger solo lo
// consulta (existencia y nombre); su ciclo de vida se administra fuera.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
