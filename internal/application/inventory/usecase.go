package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storekeeper-api/internal/application/access"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

// StockUseCase registra movimientos de stock de forma transaccional (STOCK_IN, STOCK_OUT, ADJUSTMENT)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback, y expone el historial del ledger.
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	txnRepo     repository.TransactionRepository
	events      ports.StockEventPublisher
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso. events y m pueden ser nil.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	txnRepo repository.TransactionRepository,
	events ports.StockEventPublisher,
	m *metrics.Metrics,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		txnRepo:     txnRepo,
		events:      events,
		metrics:     m,
		now:         time.Now,
	}
}

// UpdateStock valida la operación, verifica propiedad, y dentro de una transacción bloquea el producto,
// aplica la aritmética del ledger, persiste la nueva cantidad y agrega la entrada COMPLETED.
func (uc *StockUseCase) UpdateStock(ctx context.Context, userID, productID string, in dto.UpdateStockRequest) (*dto.StockUpdateResponse, error) {
	if !inventory.IsStockOperationType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de operación inválido", domain.ErrInvalidInput)
	}
	if in.Quantity == 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser distinta de cero", domain.ErrInvalidInput)
	}
	owned, err := access.OwnedProduct(ctx, uc.productRepo, userID, productID)
	if err != nil {
		return nil, err
	}

	description := in.Description
	if description == "" {
		description = inventory.DefaultDescription(in.Type)
	}

	var (
		product  entity.Product
		txn      entity.Transaction
		previous int
	)
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txnRepo repository.TransactionRepository) error {
		// Bloquea la fila del producto para serializar operaciones concurrentes
		locked, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		res, err := inventory.ApplyStockOperation(locked.Quantity, inventory.StockOperation{Type: in.Type, Quantity: in.Quantity})
		if err != nil {
			return err
		}
		now := uc.now()
		if err := productRepo.UpdateQuantity(ctx, productID, res.NewQuantity, now); err != nil {
			return err
		}
		txn = entity.Transaction{
			ID:              uuid.New().String(),
			ProductID:       productID,
			ReferenceNumber: inventory.NewReferenceNumber(now),
			Quantity:        res.Magnitude,
			Type:            in.Type,
			Status:          entity.TransactionStatusCompleted,
			Description:     description,
			CreatedAt:       now,
		}
		if err := txnRepo.Create(ctx, &txn); err != nil {
			return err
		}
		previous = locked.Quantity
		product = *locked
		product.Quantity = res.NewQuantity
		product.UpdatedAt = now
		return nil
	})
	if err != nil {
		uc.metrics.RecordStockOperation(in.Type, outcomeOf(err))
		return nil, err
	}
	uc.metrics.RecordStockOperation(in.Type, "ok")

	if uc.events != nil {
		uc.events.PublishStockChanged(userID, ports.StockChangedEvent{
			Event:            "stock.updated",
			ProductID:        product.ID,
			StoreID:          owned.Store.ID,
			Type:             txn.Type,
			PreviousQuantity: previous,
			NewQuantity:      product.Quantity,
			ReferenceNumber:  txn.ReferenceNumber,
			At:               txn.CreatedAt,
		})
	}

	return &dto.StockUpdateResponse{
		Product:          dto.FromProduct(&product),
		Transaction:      dto.FromTransaction(&txn),
		PreviousQuantity: previous,
	}, nil
}

// History devuelve el historial del producto paginado, más reciente primero.
func (uc *StockUseCase) History(ctx context.Context, userID, productID string, page dto.PageRequest) (*dto.ProductHistoryResponse, error) {
	owned, err := access.OwnedProduct(ctx, uc.productRepo, userID, productID)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	list, total, err := uc.txnRepo.ListByProduct(ctx, productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		data = append(data, dto.FromTransaction(t))
	}
	return &dto.ProductHistoryResponse{
		Product: dto.HistoryProduct{
			ID:              owned.ID,
			Name:            owned.Name,
			CurrentQuantity: owned.Quantity,
		},
		Data:       data,
		Pagination: dto.NewPagination(page, total),
	}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
