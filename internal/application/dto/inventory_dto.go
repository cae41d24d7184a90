package dto

import "time"

// UpdateStockRequest entrada de POST /products/:id/stock. Se usa el valor absoluto de Quantity.
type UpdateStockRequest struct {
	Type        string `json:"type" validate:"required,oneof=STOCK_IN STOCK_OUT ADJUSTMENT"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// TransactionResponse entrada del ledger.
type TransactionResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	ReferenceNumber string    `json:"referenceNumber"`
	Type            string    `json:"type"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StockUpdateResponse producto actualizado y el movimiento registrado.
type StockUpdateResponse struct {
	Product          ProductResponse     `json:"product"`
	Transaction      TransactionResponse `json:"transaction"`
	PreviousQuantity int                 `json:"previousQuantity"`
}

// HistoryProduct resumen del producto en el historial.
type HistoryProduct struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"currentQuantity"`
}

// ProductHistoryResponse historial paginado, más reciente primero.
type ProductHistoryResponse struct {
	Product    HistoryProduct        `json:"product"`
	Data       []TransactionResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}
