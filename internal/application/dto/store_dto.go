package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Address     string `json:"address" validate:"omitempty,max=200"`
}

// UpdateStoreRequest actualización parcial de una tienda.
type UpdateStoreRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Address     *string `json:"address" validate:"omitempty,max=200"`
}

// StoreListQuery filtros de GET /stores.
type StoreListQuery struct {
	PageRequest
	Search string `query:"search"`
}

// StoreProductsQuery filtros de GET /stores/:id/products.
type StoreProductsQuery struct {
	PageRequest
	Category string `query:"category"`
	Search   string `query:"search"`
	LowStock bool   `query:"lowStock"`
}

// StoreRef referencia corta a una tienda.
type StoreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoreDetailResponse tienda con sus productos.
type StoreDetailResponse struct {
	StoreResponse
	Products []ProductResponse `json:"products"`
}

// StoreListResponse lista paginada de tiendas.
type StoreListResponse struct {
	Data       []StoreResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// StoreProductsResponse productos de una tienda, paginados.
type StoreProductsResponse struct {
	Store      StoreRef          `json:"store"`
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// InventorySummary totales de la tienda (montos redondeados a 2 decimales).
type InventorySummary struct {
	TotalValue    decimal.Decimal `json:"totalValue"`
	TotalProducts int             `json:"totalProducts"`
	TotalQuantity int             `json:"totalQuantity"`
}

// CategoryBreakdown totales por categoría.
type CategoryBreakdown struct {
	Category      string          `json:"category"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	TotalQuantity int             `json:"totalQuantity"`
	ProductCount  int             `json:"productCount"`
}

// InventoryValueResponse salida de GET /stores/:id/inventory-value.
type InventoryValueResponse struct {
	Store     StoreRef            `json:"store"`
	Summary   InventorySummary    `json:"summary"`
	Breakdown []CategoryBreakdown `json:"breakdown"`
}
