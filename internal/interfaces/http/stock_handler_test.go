package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/stock"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de servicios
// ──────────────────────────────────────────────────────────────────────────────

type stubLedger struct {
	view   *repository.TransferView
	record *entity.StockRecord
	err    error

	lastCreate   stock.CreateTransferInput
	lastComplete int64
	lastWithdraw stock.WithdrawInput
}

func (s *stubLedger) CreateTransfer(_ context.Context, input stock.CreateTransferInput) (*repository.TransferView, error) {
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubLedger) CompleteTransfer(_ context.Context, transferID int64) (*repository.TransferView, error) {
	s.lastComplete = transferID
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubLedger) WithdrawStock(_ context.Context, input stock.WithdrawInput) (*entity.StockRecord, error) {
	s.lastWithdraw = input
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

type stubQuery struct {
	rows  []repository.StockViewRow
	views []*repository.TransferView
	err   error
}

func (s *stubQuery) ListStock(_ context.Context) ([]repository.StockViewRow, error) {
	return s.rows, s.err
}

func (s *stubQuery) ListTransfers(_ context.Context) ([]*repository.TransferView, error) {
	return s.views, s.err
}

type stubWarehouses struct {
	items []*entity.Warehouse
}

func (s *stubWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	for _, w := range s.items {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (s *stubWarehouses) List(_ context.Context) ([]*entity.Warehouse, error) {
	return s.items, nil
}

func newTestApp(ledger *stubLedger, query *stubQuery) *fiber.App {
	app := fiber.New()
	Router(app, RouterDeps{
		Ledger: ledger,
		Query:  query,
		Warehouses: &stubWarehouses{items: []*entity.Warehouse{
			{ID: "wh-1", Name: "Bodega Norte"},
		}},
	})
	return app
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func sampleView() *repository.TransferView {
	return &repository.TransferView{
		ID:                7,
		FromWarehouseID:   "wh-1",
		FromWarehouseName: "Bodega Norte",
		ToWarehouseID:     "wh-2",
		ToWarehouseName:   "Bodega Sur",
		UserID:            "u-1",
		UserName:          "Laura",
		Status:            entity.TransferStatusPending,
		CreatedAt:         time.Now(),
		Details: []repository.TransferViewDetail{
			{ID: 1, ProductID: "p-1", ProductName: "Tornillo 3mm", SKU: "SKU-1", Quantity: decimal.NewFromInt(4)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransfer_Creado(t *testing.T) {
	ledger := &stubLedger{view: sampleView()}
	app := newTestApp(ledger, &stubQuery{})

	body := `{
		"from_warehouse_id": "wh-1",
		"to_warehouse_id": "wh-2",
		"user_id": "u-1",
		"notes": "reposición",
		"details": [{"product_id": "p-1", "quantity": "4"}]
	}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/stock/create-transfer", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.TransferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "Bodega Norte", out.FromWarehouse.Name)
	assert.Equal(t, entity.TransferStatusPending, out.Status)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "Tornillo 3mm", out.Details[0].ProductName)

	// El body llegó íntegro al caso de uso.
	assert.Equal(t, "wh-1", ledger.lastCreate.FromWarehouseID)
	assert.Equal(t, "reposición", ledger.lastCreate.Notes)
	require.Len(t, ledger.lastCreate.Lines, 1)
	assert.True(t, ledger.lastCreate.Lines[0].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestCreateTransfer_BodyInvalido(t *testing.T) {
	app := newTestApp(&stubLedger{}, &stubQuery{})

	req := httptest.NewRequest(fiber.MethodPost, "/api/stock/create-transfer", strings.NewReader("{no es json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp.Body).Code)
}

// Cada error de dominio debe salir con su status y código estables.
func TestCreateTransfer_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"stock insuficiente tipado", &domain.InsufficientStockError{
			ProductID: "p-1",
			Available: decimal.NewFromInt(2),
			Requested: decimal.NewFromInt(5),
		}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"stock insuficiente centinela", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"operación inválida", domain.ErrInvalidOperation, fiber.StatusBadRequest, "INVALID_OPERATION"},
		{"cantidad inválida", domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"contención", domain.ErrBusy, fiber.StatusConflict, "CONFLICT"},
		{"error interno", errors.New("se cayó la base"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&stubLedger{err: tc.err}, &stubQuery{})

			body := `{"from_warehouse_id":"wh-1","to_warehouse_id":"wh-2","user_id":"u-1","details":[{"product_id":"p-1","quantity":"1"}]}`
			req := httptest.NewRequest(fiber.MethodPost, "/api/stock/create-transfer", strings.NewReader(body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantCode, decodeError(t, resp.Body).Code)
		})
	}
}

func TestCreateTransfer_MensajeDeStockInsuficiente(t *testing.T) {
	app := newTestApp(&stubLedger{err: &domain.InsufficientStockError{
		ProductID: "p-1",
		Available: decimal.NewFromInt(2),
		Requested: decimal.NewFromInt(5),
	}}, &stubQuery{})

	body := `{"from_warehouse_id":"wh-1","to_warehouse_id":"wh-2","user_id":"u-1","details":[{"product_id":"p-1","quantity":"5"}]}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/stock/create-transfer", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	// El mensaje incluye producto, disponible y solicitado para diagnóstico.
	msg := decodeError(t, resp.Body).Message
	assert.Contains(t, msg, "p-1")
	assert.Contains(t, msg, "2")
	assert.Contains(t, msg, "5")
}

func TestCompleteTransfer_Rutas(t *testing.T) {
	t.Run("completada", func(t *testing.T) {
		view := sampleView()
		view.Status = entity.TransferStatusCompleted
		ledger := &stubLedger{view: view}
		app := newTestApp(ledger, &stubQuery{})

		req := httptest.NewRequest(fiber.MethodPatch, "/api/stock/complete-transfer/7", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(7), ledger.lastComplete)

		var out dto.TransferResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, entity.TransferStatusCompleted, out.Status)
	})

	t.Run("id no numérico", func(t *testing.T) {
		app := newTestApp(&stubLedger{}, &stubQuery{})

		req := httptest.NewRequest(fiber.MethodPatch, "/api/stock/complete-transfer/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Code)
	})

	t.Run("ya completada", func(t *testing.T) {
		app := newTestApp(&stubLedger{err: domain.ErrAlreadyCompleted}, &stubQuery{})

		req := httptest.NewRequest(fiber.MethodPatch, "/api/stock/complete-transfer/7", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "ALREADY_COMPLETED", decodeError(t, resp.Body).Code)
	})
}

func TestWithdraw_Rutas(t *testing.T) {
	t.Run("retiro aplicado", func(t *testing.T) {
		ledger := &stubLedger{record: &entity.StockRecord{
			ID:          3,
			ProductID:   "p-1",
			WarehouseID: "wh-1",
			Quantity:    decimal.Zero,
			UpdatedAt:   time.Now(),
		}}
		app := newTestApp(ledger, &stubQuery{})

		body := `{"warehouse_id":"wh-1","stock_id":3,"quantity":"3","user_id":"u-1"}`
		req := httptest.NewRequest(fiber.MethodPost, "/api/stock/withdraw", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.StockRecordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, int64(3), out.StockID)
		assert.True(t, out.Quantity.IsZero())

		assert.Equal(t, int64(3), ledger.lastWithdraw.StockID)
		assert.Equal(t, "wh-1", ledger.lastWithdraw.WarehouseID)
	})

	t.Run("bodega equivocada", func(t *testing.T) {
		app := newTestApp(&stubLedger{err: domain.ErrWarehouseMismatch}, &stubQuery{})

		body := `{"warehouse_id":"wh-2","stock_id":3,"quantity":"1","user_id":"u-1"}`
		req := httptest.NewRequest(fiber.MethodPost, "/api/stock/withdraw", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "WAREHOUSE_MISMATCH", decodeError(t, resp.Body).Code)
	})
}

func TestListStock_Vista(t *testing.T) {
	query := &stubQuery{rows: []repository.StockViewRow{
		{
			StockID:       1,
			ProductID:     "p-1",
			SKU:           "SKU-1",
			ProductName:   "Tornillo 3mm",
			WarehouseID:   "wh-1",
			WarehouseName: "Bodega Norte",
			Quantity:      decimal.NewFromInt(10),
			UpdatedAt:     time.Now(),
		},
	}}
	app := newTestApp(&stubLedger{}, query)

	req := httptest.NewRequest(fiber.MethodGet, "/api/stock/view", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.StockRowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].StockID)
	assert.Equal(t, "Bodega Norte", out[0].WarehouseName)
}

func TestListTransfers_Vista(t *testing.T) {
	query := &stubQuery{views: []*repository.TransferView{sampleView()}}
	app := newTestApp(&stubLedger{}, query)

	req := httptest.NewRequest(fiber.MethodGet, "/api/stock/all-transfer", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.TransferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0].ID)
}

func TestListWarehouses(t *testing.T) {
	app := newTestApp(&stubLedger{}, &stubQuery{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/warehouses/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
