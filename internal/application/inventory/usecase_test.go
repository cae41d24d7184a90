package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/inventory"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/memory"
)

type recorder struct {
	mu     sync.Mutex
	events map[string][]ports.StockChangedEvent
}

func (r *recorder) PublishStockChanged(userID string, evt ports.StockChangedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[string][]ports.StockChangedEvent)
	}
	r.events[userID] = append(r.events[userID], evt)
}

func (r *recorder) byUser(userID string) []ports.StockChangedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[userID]
}

type fixture struct {
	db      *memory.DB
	uc      *inventory.StockUseCase
	events  *recorder
	product *entity.Product
}

func setup(t *testing.T, qty int) fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	now := time.Now()
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "user-a", Email: "a@x.com"}))
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "user-b", Email: "b@x.com"}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "store-a", UserID: "user-a", Name: "A", CreatedAt: now}))
	p := &entity.Product{
		ID: "prod-1", StoreID: "store-a", SKU: "SKU-1", Name: "Widget", Category: "Tools",
		Price: decimal.RequireFromString("2.50"), Quantity: qty, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Products().Create(ctx, p))
	rec := &recorder{}
	uc := inventory.NewStockUseCase(db.TxRunner(), db.Products(), db.Transactions(), rec, nil)
	return fixture{db: db, uc: uc, events: rec, product: p}
}

func quantityOf(t *testing.T, db *memory.DB, id string) int {
	t.Helper()
	p, err := db.Products().GetWithStore(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func TestUpdateStock_SalidaYStockInsuficiente(t *testing.T) {
	f := setup(t, 5)
	ctx := context.Background()

	out, err := f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockOut, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Product.Quantity)
	assert.Equal(t, 5, out.PreviousQuantity)
	assert.Equal(t, 3, out.Transaction.Quantity)
	assert.Equal(t, entity.TransactionStatusCompleted, out.Transaction.Status)
	assert.Equal(t, "STOCK_OUT operation", out.Transaction.Description)
	assert.Regexp(t, `^TXN-\d+-[0-9A-F]{8}$`, out.Transaction.ReferenceNumber)

	_, err = f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockOut, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, quantityOf(t, f.db, "prod-1"))

	n, err := f.db.Transactions().CountByProduct(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la operación fallida no agrega entradas al ledger")
}

func TestUpdateStock_EntradaYAjusteUsanValorAbsoluto(t *testing.T) {
	f := setup(t, 4)
	ctx := context.Background()

	out, err := f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockIn, Quantity: -6, Description: "compra"})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Product.Quantity)
	assert.Equal(t, 6, out.Transaction.Quantity)
	assert.Equal(t, "compra", out.Transaction.Description)

	out, err = f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeAdjustment, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Product.Quantity)
	assert.Equal(t, 7, quantityOf(t, f.db, "prod-1"))

	events := f.events.byUser("user-a")
	require.Len(t, events, 2)
	last := events[1]
	assert.Equal(t, "stock.updated", last.Event)
	assert.Equal(t, 10, last.PreviousQuantity)
	assert.Equal(t, 7, last.NewQuantity)
	assert.Equal(t, "store-a", last.StoreID)
}

func TestUpdateStock_PropiedadYExistencia(t *testing.T) {
	f := setup(t, 5)
	ctx := context.Background()
	req := dto.UpdateStockRequest{Type: entity.TransactionTypeStockIn, Quantity: 1}

	_, err := f.uc.UpdateStock(ctx, "user-b", "prod-1", req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.UpdateStock(ctx, "user-b", "no-existe", req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "NotFound tiene prioridad sobre Forbidden")

	assert.Equal(t, 5, quantityOf(t, f.db, "prod-1"))
	assert.Empty(t, f.events.byUser("user-a"))
}

func TestUpdateStock_EntradasInvalidas(t *testing.T) {
	f := setup(t, 5)
	ctx := context.Background()

	_, err := f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockIn, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeInitial, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: "TRANSFER", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_MasRecientePrimeroYPaginado(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockIn, Quantity: i})
		require.NoError(t, err)
	}

	h, err := f.uc.History(ctx, "user-a", "prod-1", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "Widget", h.Product.Name)
	assert.Equal(t, 6, h.Product.CurrentQuantity)
	require.Len(t, h.Data, 2)
	assert.Equal(t, 3, h.Data[0].Quantity)
	assert.Equal(t, 2, h.Data[1].Quantity)
	assert.Equal(t, dto.Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, h.Pagination)

	_, err = f.uc.History(ctx, "user-b", "prod-1", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Entradas concurrentes sobre el mismo producto no pierden actualizaciones.
func TestUpdateStock_ConcurrenteNoPierdeActualizaciones(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.UpdateStock(ctx, "user-a", "prod-1", dto.UpdateStockRequest{Type: entity.TransactionTypeStockIn, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, n, quantityOf(t, f.db, "prod-1"))
	count, err := f.db.Transactions().CountByProduct(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, n, count)
	assert.Len(t, f.events.byUser("user-a"), n)
}
