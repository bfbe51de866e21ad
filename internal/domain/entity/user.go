package entity

import "time"

// User identidad del actor que origina movimientos. El ledger asume que ya
// viene autenticado; aquí solo se verifica existencia y se resuelve el nombre.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
