package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold cantidad a partir de la cual (inclusive) un producto se considera con stock bajo.
const LowStockThreshold = 10

// Product representa un producto de una tienda. Quantity solo cambia vía movimientos del ledger.
type Product struct {
	ID          string
	StoreID     string
	SKU         string // generado por el sistema, único global
	Name        string // único dentro de la tienda
	Category    string
	Price       decimal.Decimal // >= 0, 2 decimales
	Quantity    int             // >= 0
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo del umbral de stock bajo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= LowStockThreshold
}

// ProductWithStore producto junto con la tienda dueña (una sola lectura con JOIN).
type ProductWithStore struct {
	Product
	Store Store
}
