package entity

import "time"

// Tipos de movimiento del ledger.
const (
	TransactionTypeStockIn    = "STOCK_IN"
	TransactionTypeStockOut   = "STOCK_OUT"
	TransactionTypeAdjustment = "ADJUSTMENT"
	TransactionTypeInitial    = "INITIAL"
)

// Estados de un movimiento. Solo COMPLETED se usa al crear.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusCancelled = "CANCELLED"
)

// Transaction entrada inmutable del ledger: un cambio de stock sobre un producto.
type Transaction struct {
	ID              string
	ProductID       string
	ReferenceNumber string
	Quantity        int // magnitud, siempre > 0
	Type            string
	Status          string
	Description     string
	CreatedAt       time.Time
}
