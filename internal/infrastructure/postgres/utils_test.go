package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodegas-api/internal/domain"
)

func TestTranslateError_CodigosSQLSTATE(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{codeUniqueViolation, domain.ErrDuplicate},
		{codeForeignKeyViolation, domain.ErrNotFound},
		{codeCheckViolation, domain.ErrInsufficientStock},
		{codeLockNotAvailable, domain.ErrBusy},
		{codeSerializationFail, domain.ErrBusy},
		{codeDeadlockDetected, domain.ErrBusy},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := translateError(&pgconn.PgError{Code: tc.code})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTranslateError_ErrorEnvuelto(t *testing.T) {
	// El código debe detectarse aunque el PgError venga envuelto.
	wrapped := fmt.Errorf("insert stock: %w", &pgconn.PgError{Code: codeCheckViolation})
	assert.ErrorIs(t, translateError(wrapped), domain.ErrInsufficientStock)
}

func TestTranslateError_Passthrough(t *testing.T) {
	assert.NoError(t, translateError(nil))

	// Códigos no mapeados y errores ajenos a PostgreSQL pasan intactos.
	unknown := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(unknown), translateError(unknown))

	plain := errors.New("conexión caída")
	assert.Equal(t, plain, translateError(plain))
}
