package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger de movimientos sobre PostgreSQL. Solo inserta y lee: las entradas no se modifican.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, product_id, reference_number, quantity, type, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`,
		t.ID, t.ProductID, t.ReferenceNumber, t.Quantity, t.Type, t.Status, t.Description, t.CreatedAt,
	)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return domain.ErrDuplicate
		case codeForeignKeyViolation:
			return domain.ErrNotFound
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, constraintName(err))
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Transaction, int, error) {
	total, err := r.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, reference_number, quantity, type, status, COALESCE(description, ''), created_at
		FROM transactions WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.ReferenceNumber, &t.Quantity, &t.Type, &t.Status, &t.Description, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// CountByProduct cantidad de entradas del producto.
func (r *TransactionRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
