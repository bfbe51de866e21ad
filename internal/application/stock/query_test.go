package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/stock"
	"github.com/jhoicas/bodegas-api/internal/domain"
)

func TestQuery_ListStock(t *testing.T) {
	s := newFakeStore()
	s.seedStock(productP1, whA, 10)
	s.seedStock(productP1, whB, 2)
	q := stock.NewQueryUseCase(fakeViewRepo{s})

	rows, err := q.ListStock(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "una fila por par producto-bodega")
	for _, row := range rows {
		assert.Equal(t, productP1, row.ProductID)
		assert.Equal(t, "Tornillo 3mm", row.ProductName)
		assert.NotEmpty(t, row.WarehouseName)
	}
}

func TestQuery_ListTransfersMasRecientePrimero(t *testing.T) {
	s := newFakeStore()
	s.seedStock(productP1, whA, 10)
	uc := newLedger(s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.CreateTransfer(ctx, stock.CreateTransferInput{
			FromWarehouseID: whA,
			ToWarehouseID:   whB,
			UserID:          userU1,
			Lines:           []stock.TransferLineInput{{ProductID: productP1, Quantity: qty(1)}},
		})
		require.NoError(t, err)
	}

	q := stock.NewQueryUseCase(fakeViewRepo{s})
	views, err := q.ListTransfers(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, int64(3), views[0].ID, "orden descendente por creación")
	assert.Equal(t, int64(1), views[2].ID)
}

func TestQuery_GetTransferInexistente(t *testing.T) {
	s := newFakeStore()
	q := stock.NewQueryUseCase(fakeViewRepo{s})

	_, err := q.GetTransfer(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
