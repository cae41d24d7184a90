package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// TxRunner serializa las transacciones y restaura el estado si fn falla.
type TxRunner struct{ db *DB }

// Run ejecuta fn con los repos del almacén; Rollback = restaurar el snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	r.db.mu.Lock()
	products := maps.Clone(r.db.products)
	txns := slices.Clone(r.db.txns)
	r.db.mu.Unlock()

	if err := fn(r.db.Products(), r.db.Transactions()); err != nil {
		r.db.mu.Lock()
		r.db.products = products
		r.db.txns = txns
		r.db.mu.Unlock()
		return err
	}
	return nil
}
