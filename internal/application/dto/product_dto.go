package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El SKU lo genera el sistema.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Category    string           `json:"category" validate:"required,min=1,max=50"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    int              `json:"quantity" validate:"min=0"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string           `json:"imageUrl" validate:"omitempty,url"`
	StoreID     string           `json:"storeId" validate:"required,uuid"`
}

// UpdateProductRequest actualización parcial. Quantity no se modifica aquí (solo vía /stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=50"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
}

// ProductListQuery filtros de GET /products.
type ProductListQuery struct {
	PageRequest
	Category string `query:"category"`
	Search   string `query:"search"`
	StoreID  string `query:"storeId"`
	LowStock bool   `query:"lowStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"storeId"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LowStock    bool            `json:"lowStock"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductDetailResponse producto con la tienda dueña.
type ProductDetailResponse struct {
	ProductResponse
	Store StoreRef `json:"store"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
