package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
)

// ProductFilter filtros combinados con AND para listados de productos.
// UserID acota por dueño de la tienda (JOIN stores); StoreID acota a una tienda.
type ProductFilter struct {
	UserID   string
	StoreID  string
	Category string // igualdad case-insensitive
	Search   string // substring case-insensitive sobre name o description
	LowStock bool   // quantity <= entity.LowStockThreshold
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetWithStore obtiene el producto y su tienda en una sola lectura.
	GetWithStore(ctx context.Context, id string) (*entity.ProductWithStore, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error)
}
