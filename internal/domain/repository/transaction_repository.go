package repository

import (
	"context"

	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
)

// TransactionRepository puerto del ledger. Solo inserción y lectura: las entradas son inmutables.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Transaction, int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
