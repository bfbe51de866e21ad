package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// Nombres de operación para métricas y logs.
const (
	opCreateTransfer   = "create_transfer"
	opCompleteTransfer = "complete_transfer"
	opWithdrawStock    = "withdraw_stock"
)

// LedgerUseCase es el motor del ledger de existencias: aplica transferencias
// y retiros de forma transaccional (SELECT FOR UPDATE + Commit/Rollback) y
// deja rastro de auditoría por cada delta aplicado.
type LedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	userRepo      repository.UserRepository
	viewRepo      repository.StockViewRepository
	metrics       MetricsRecorder
	log           *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	viewRepo repository.StockViewRepository,
	metrics MetricsRecorder,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		viewRepo:      viewRepo,
		metrics:       metrics,
		log:           log,
	}
}

// TransferLineInput una línea de la transferencia, direccionada por producto;
// el stock origen se resuelve contra la bodega origen del encabezado.
type TransferLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateTransferInput entrada para CreateTransfer.
type CreateTransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	UserID          string
	Notes           string
	Lines           []TransferLineInput
}

// WithdrawInput entrada para WithdrawStock. El stock se direcciona por su id
// y debe pertenecer a la bodega indicada.
type WithdrawInput struct {
	WarehouseID string
	StockID     int64
	Quantity    decimal.Decimal
	UserID      string
}

// CreateTransfer mueve stock entre dos bodegas en una sola transacción:
// encabezado → por cada línea en orden de envío: bloqueo y débito en origen
// + auditoría TRANSFER_OUT, get-or-create y crédito en destino + auditoría
// TRANSFER_IN, línea de detalle → commit. Cualquier falla en cualquier línea
// revierte todo: jamás queda un movimiento parcial persistido.
//
// Las líneas se procesan secuencialmente para que un producto repetido vea
// el saldo ya afectado por las líneas anteriores.
func (uc *LedgerUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*repository.TransferView, error) {
	start := time.Now()
	view, err := uc.createTransfer(ctx, input)
	uc.metrics.ObserveOperation(opCreateTransfer, start, err)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("from", input.FromWarehouseID).
			Str("to", input.ToWarehouseID).
			Int("lines", len(input.Lines)).
			Msg("transferencia rechazada")
		return nil, err
	}
	uc.log.Info().
		Int64("transfer_id", view.ID).
		Str("from", input.FromWarehouseID).
		Str("to", input.ToWarehouseID).
		Int("lines", len(input.Lines)).
		Msg("transferencia creada")
	return view, nil
}

func (uc *LedgerUseCase) createTransfer(ctx context.Context, input CreateTransferInput) (*repository.TransferView, error) {
	// Validaciones antes de tomar cualquier bloqueo.
	if input.FromWarehouseID == input.ToWarehouseID {
		return nil, domain.ErrInvalidOperation
	}
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidOperation
	}
	for _, line := range input.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
	}
	if err := uc.checkCollaborators(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		UserID:          input.UserID,
		Notes:           input.Notes,
		Status:          entity.TransferStatusPending,
		CreatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.StockAuditRepository,
		transferRepo repository.TransferRepository,
	) error {
		if err := transferRepo.Create(ctx, transfer); err != nil {
			return err
		}
		for _, line := range input.Lines {
			if err := uc.applyLine(ctx, stockRepo, auditRepo, transferRepo, transfer, line, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.viewRepo.GetTransfer(ctx, transfer.ID)
}

// applyLine aplica una línea: débito en origen y crédito en destino, cada uno
// con su entrada de auditoría, más la fila de detalle. Corre dentro de la tx.
func (uc *LedgerUseCase) applyLine(
	ctx context.Context,
	stockRepo repository.StockRepository,
	auditRepo repository.StockAuditRepository,
	transferRepo repository.TransferRepository,
	transfer *entity.Transfer,
	line TransferLineInput,
	now time.Time,
) error {
	// Bloquea la fila origen; ausente cuenta como disponible 0.
	source, err := stockRepo.GetForUpdate(ctx, line.ProductID, transfer.FromWarehouseID)
	if err != nil {
		return err
	}
	available := decimal.Zero
	if source != nil {
		available = source.Quantity
	}
	if available.LessThan(line.Quantity) {
		return &domain.InsufficientStockError{
			ProductID: line.ProductID,
			Available: available,
			Requested: line.Quantity,
		}
	}

	if _, err := stockRepo.ApplyDelta(ctx, source.ID, line.Quantity.Neg(), now); err != nil {
		return err
	}
	if err := auditRepo.Append(ctx, &entity.StockAudit{
		StockID:    source.ID,
		Change:     line.Quantity.Neg(),
		Reason:     entity.AuditReasonTransferOut,
		TransferID: &transfer.ID,
		UserID:     transfer.UserID,
		CreatedAt:  now,
	}); err != nil {
		return err
	}

	dest, err := stockRepo.GetOrCreateForUpdate(ctx, line.ProductID, transfer.ToWarehouseID)
	if err != nil {
		return err
	}
	if _, err := stockRepo.ApplyDelta(ctx, dest.ID, line.Quantity, now); err != nil {
		return err
	}
	if err := auditRepo.Append(ctx, &entity.StockAudit{
		StockID:    dest.ID,
		Change:     line.Quantity,
		Reason:     entity.AuditReasonTransferIn,
		TransferID: &transfer.ID,
		UserID:     transfer.UserID,
		CreatedAt:  now,
	}); err != nil {
		return err
	}

	return transferRepo.AddDetail(ctx, &entity.TransferDetail{
		TransferID: transfer.ID,
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
	})
}

// checkCollaborators valida que bodegas, actor y productos existan antes de
// abrir la transacción.
func (uc *LedgerUseCase) checkCollaborators(ctx context.Context, input CreateTransferInput) error {
	fromWh, err := uc.warehouseRepo.GetByID(ctx, input.FromWarehouseID)
	if err != nil {
		return err
	}
	toWh, err := uc.warehouseRepo.GetByID(ctx, input.ToWarehouseID)
	if err != nil {
		return err
	}
	if fromWh == nil || toWh == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	for _, line := range input.Lines {
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// CompleteTransfer marca el encabezado como COMPLETED. No mueve stock: el
// movimiento ya quedó aplicado al crear la transferencia; esto solo cierra
// el encabezado para consumidores posteriores. Completar dos veces falla con
// ErrAlreadyCompleted; un id inexistente falla con ErrNotFound.
func (uc *LedgerUseCase) CompleteTransfer(ctx context.Context, transferID int64) (*repository.TransferView, error) {
	start := time.Now()
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.StockAuditRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status == entity.TransferStatusCompleted {
			return domain.ErrAlreadyCompleted
		}
		return transferRepo.SetStatus(ctx, transferID, entity.TransferStatusCompleted)
	})
	uc.metrics.ObserveOperation(opCompleteTransfer, start, err)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("transfer_id", transferID).Msg("transferencia completada")
	return uc.viewRepo.GetTransfer(ctx, transferID)
}

// WithdrawStock retira cantidad de un stock direccionado por id, validando
// que pertenezca a la bodega indicada. Es un retiro terminal: no hay bodega
// destino ni encabezado de transferencia, solo la auditoría WITHDRAWAL.
func (uc *LedgerUseCase) WithdrawStock(ctx context.Context, input WithdrawInput) (*entity.StockRecord, error) {
	start := time.Now()
	record, err := uc.withdrawStock(ctx, input)
	uc.metrics.ObserveOperation(opWithdrawStock, start, err)
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("stock_id", input.StockID).
			Str("warehouse", input.WarehouseID).
			Msg("retiro rechazado")
		return nil, err
	}
	uc.log.Info().
		Int64("stock_id", input.StockID).
		Str("quantity", input.Quantity.String()).
		Msg("retiro aplicado")
	return record, nil
}

func (uc *LedgerUseCase) withdrawStock(ctx context.Context, input WithdrawInput) (*entity.StockRecord, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	ok, err := uc.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var updated *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.StockAuditRepository,
		_ repository.TransferRepository,
	) error {
		record, err := stockRepo.GetByIDForUpdate(ctx, input.StockID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if record.WarehouseID != input.WarehouseID {
			return domain.ErrWarehouseMismatch
		}
		if record.Quantity.LessThan(input.Quantity) {
			return &domain.InsufficientStockError{
				ProductID: record.ProductID,
				Available: record.Quantity,
				Requested: input.Quantity,
			}
		}
		updated, err = stockRepo.ApplyDelta(ctx, record.ID, input.Quantity.Neg(), now)
		if err != nil {
			return err
		}
		return auditRepo.Append(ctx, &entity.StockAudit{
			StockID:   record.ID,
			Change:    input.Quantity.Neg(),
			Reason:    entity.AuditReasonWithdrawal,
			UserID:    input.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
