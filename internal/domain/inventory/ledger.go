// Package inventory contiene la lógica pura del ledger de stock: aritmética de movimientos,
// generación de códigos y valorización del inventario. Sin dependencias de infraestructura.
package inventory

import (
	"fmt"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
)

// StockOperation operación de stock pedida por el usuario. Quantity puede venir con signo;
// solo se usa su valor absoluto.
type StockOperation struct {
	Type     string
	Quantity int
}

// StockResult resultado de aplicar una operación: nueva cantidad y magnitud a registrar en el ledger.
type StockResult struct {
	NewQuantity int
	Magnitude   int
}

// ApplyStockOperation calcula la nueva cantidad del producto para la operación pedida.
//
//	STOCK_IN   -> current + |delta|
//	STOCK_OUT  -> current - |delta|, ErrInsufficientStock si current < |delta|
//	ADJUSTMENT -> |delta| (valor absoluto, no relativo)
//
// El resultado nunca es negativo: se verifica siempre después del cálculo.
func ApplyStockOperation(current int, op StockOperation) (StockResult, error) {
	if current < 0 {
		return StockResult{}, fmt.Errorf("%w: cantidad actual negativa", domain.ErrInvalidInput)
	}
	delta := abs(op.Quantity)

	var next int
	switch op.Type {
	case entity.TransactionTypeStockIn:
		next = current + delta
	case entity.TransactionTypeStockOut:
		if current < delta {
			return StockResult{}, domain.ErrInsufficientStock
		}
		next = current - delta
	case entity.TransactionTypeAdjustment:
		next = delta
	default:
		return StockResult{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, op.Type)
	}

	if next < 0 {
		return StockResult{}, domain.ErrNegativeStock
	}
	return StockResult{NewQuantity: next, Magnitude: delta}, nil
}

// IsStockOperationType indica si el tipo puede pedirse vía actualización de stock (INITIAL no).
func IsStockOperationType(t string) bool {
	switch t {
	case entity.TransactionTypeStockIn, entity.TransactionTypeStockOut, entity.TransactionTypeAdjustment:
		return true
	}
	return false
}

// DefaultDescription descripción usada cuando el usuario no envía una.
func DefaultDescription(opType string) string {
	return opType + " operation"
}

// InitialStockDescription descripción de la entrada INITIAL al crear un producto con stock.
const InitialStockDescription = "Initial stock"

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
