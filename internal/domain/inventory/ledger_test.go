package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
)

func TestApplyStockOperation_StockIn(t *testing.T) {
	for _, tc := range []struct{ current, delta int }{{0, 0}, {0, 5}, {7, 3}, {100, 1}} {
		res, err := inventory.ApplyStockOperation(tc.current, inventory.StockOperation{
			Type: entity.TransactionTypeStockIn, Quantity: tc.delta,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.current+tc.delta, res.NewQuantity)
		assert.Equal(t, tc.delta, res.Magnitude)
	}
}

func TestApplyStockOperation_StockOut(t *testing.T) {
	res, err := inventory.ApplyStockOperation(5, inventory.StockOperation{Type: entity.TransactionTypeStockOut, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewQuantity)
	assert.Equal(t, 3, res.Magnitude)

	res, err = inventory.ApplyStockOperation(4, inventory.StockOperation{Type: entity.TransactionTypeStockOut, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewQuantity, "sacar exactamente el stock deja cero")
}

func TestApplyStockOperation_StockOutInsuficiente(t *testing.T) {
	_, err := inventory.ApplyStockOperation(2, inventory.StockOperation{Type: entity.TransactionTypeStockOut, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyStockOperation_AdjustmentEsAbsoluto(t *testing.T) {
	for _, current := range []int{0, 3, 50} {
		res, err := inventory.ApplyStockOperation(current, inventory.StockOperation{Type: entity.TransactionTypeAdjustment, Quantity: 12})
		require.NoError(t, err)
		assert.Equal(t, 12, res.NewQuantity, "ADJUSTMENT fija la cantidad sin importar la actual")
		assert.Equal(t, 12, res.Magnitude)
	}
}

func TestApplyStockOperation_UsaValorAbsoluto(t *testing.T) {
	res, err := inventory.ApplyStockOperation(10, inventory.StockOperation{Type: entity.TransactionTypeStockOut, Quantity: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, res.NewQuantity)
	assert.Equal(t, 4, res.Magnitude)

	res, err = inventory.ApplyStockOperation(10, inventory.StockOperation{Type: entity.TransactionTypeAdjustment, Quantity: -3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewQuantity)
}

func TestApplyStockOperation_TipoInvalido(t *testing.T) {
	for _, typ := range []string{"", entity.TransactionTypeInitial, "TRANSFER"} {
		_, err := inventory.ApplyStockOperation(1, inventory.StockOperation{Type: typ, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %q", typ)
	}
}

func TestIsStockOperationType(t *testing.T) {
	assert.True(t, inventory.IsStockOperationType(entity.TransactionTypeStockIn))
	assert.True(t, inventory.IsStockOperationType(entity.TransactionTypeAdjustment))
	assert.False(t, inventory.IsStockOperationType(entity.TransactionTypeInitial))
}

func TestDefaultDescription(t *testing.T) {
	assert.Equal(t, "STOCK_OUT operation", inventory.DefaultDescription(entity.TransactionTypeStockOut))
}
