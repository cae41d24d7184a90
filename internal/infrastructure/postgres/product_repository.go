package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.store_id, p.sku, p.name, p.category, p.price, p.quantity,
	COALESCE(p.description, ''), COALESCE(p.image_url, ''), p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, store_id, sku, name, category, price, quantity, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11)`,
		p.ID, p.StoreID, p.SKU, p.Name, p.Category, p.Price, p.Quantity,
		p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case pgCode(err) == codeForeignKeyViolation:
			return domain.ErrNotFound
		case pgCode(err) == codeCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, constraintName(err))
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetWithStore obtiene el producto junto a su tienda (JOIN) para la verificación de propiedad.
func (r *ProductRepo) GetWithStore(ctx context.Context, id string) (*entity.ProductWithStore, error) {
	var pw entity.ProductWithStore
	p, s := &pw.Product, &pw.Store
	err := r.q.QueryRow(ctx, `
		SELECT `+productColumns+`,
			s.id, s.user_id, s.name, COALESCE(s.description, ''), COALESCE(s.address, ''), s.created_at, s.updated_at
		FROM products p JOIN stores s ON s.id = p.store_id
		WHERE p.id = $1`, id,
	).Scan(
		&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.Quantity,
		&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&s.ID, &s.UserID, &s.Name, &s.Description, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with store: %w", err)
	}
	return &pw, nil
}

// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE). Debe llamarse dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1 FOR UPDATE`, id).Scan(
		&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.Quantity,
		&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables. No modifica quantity (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, category = $3, price = $4, description = NULLIF($5, ''),
			image_url = NULLIF($6, ''), updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Price, p.Description, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad (usado por el motor de stock, dentro de la tx).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, at)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. La FK RESTRICT del ledger impide borrar productos con historial.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrHasHistory
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List aplica los filtros combinados con AND. El alcance por dueño se hace con JOIN a stores.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var b filterBuilder
	if f.UserID != "" {
		b.add("s.user_id = ?", f.UserID)
	}
	if f.StoreID != "" {
		b.add("p.store_id = ?", f.StoreID)
	}
	if f.Category != "" {
		b.add("LOWER(p.category) = LOWER(?)", f.Category)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		b.add("(p.name ILIKE ? OR p.description ILIKE ?)", pattern, pattern)
	}
	if f.LowStock {
		b.add("p.quantity <= ?", entity.LowStockThreshold)
	}
	from := ` FROM products p JOIN stores s ON s.id = p.store_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+b.where(), b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + from + b.where() + ` ORDER BY p.created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + b.next(f.Limit) + ` OFFSET ` + b.next(f.Offset)
	}
	list, err := r.query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByStore todos los productos de la tienda (agregación y detalle de tienda).
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products p WHERE p.store_id = $1 ORDER BY p.created_at DESC`, storeID)
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.Quantity,
			&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
