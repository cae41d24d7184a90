package inventory

import (
	"context"

	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre la cantidad del producto y su entrada en el ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}
