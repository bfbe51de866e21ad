package repository

import "context"

// UserRepository puerto hacia el subsistema de identidad. El ledger asume al
// actor ya autenticado; aquí solo se verifica que exista.
type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}
