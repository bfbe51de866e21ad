package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/bodegas-api/internal/domain"
)

// Códigos SQLSTATE que el ledger traduce a errores de dominio. El resto de
// errores del motor se propaga envuelto, nunca como código crudo al caller.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

// translateError convierte errores de PostgreSQL en errores de dominio:
// contención de bloqueos/serialización -> ErrBusy (reintentable por el caller,
// nunca dentro del core); CHECK de cantidad -> ErrInsufficientStock como
// última línea de defensa del invariante quantity >= 0.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	case codeCheckViolation:
		return domain.ErrInsufficientStock
	case codeLockNotAvailable, codeSerializationFail, codeDeadlockDetected:
		return domain.ErrBusy
	}
	return err
}
