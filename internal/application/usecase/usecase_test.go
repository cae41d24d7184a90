package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/inventory"
	"github.com/jhoicas/storekeeper-api/internal/application/usecase"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/memory"
)

type env struct {
	db       *memory.DB
	products *usecase.ProductUseCase
	stores   *usecase.StoreUseCase
	stock    *inventory.StockUseCase
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "user-a", Email: "a@x.com"}))
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "user-b", Email: "b@x.com"}))
	return env{
		db:       db,
		products: usecase.NewProductUseCase(db.TxRunner(), db.Products(), db.Stores(), db.Transactions()),
		stores:   usecase.NewStoreUseCase(db.Stores(), db.Products()),
		stock:    inventory.NewStockUseCase(db.TxRunner(), db.Products(), db.Transactions(), nil, nil),
	}
}

func (e env) store(t *testing.T, userID, name string) string {
	t.Helper()
	s, err := e.stores.Create(context.Background(), userID, dto.CreateStoreRequest{Name: name})
	require.NoError(t, err)
	return s.ID
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (e env) product(t *testing.T, userID, storeID, name, category, price string, qty int) *dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(context.Background(), userID, dto.CreateProductRequest{
		Name: name, Category: category, Price: money(price), Quantity: qty, StoreID: storeID,
	})
	require.NoError(t, err)
	return p
}

func TestProductCreate_RegistraEntradaInicial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	storeID := e.store(t, "user-a", "Tienda A")

	p := e.product(t, "user-a", storeID, "Widget", "Tools", "9.999", 5)
	assert.Regexp(t, `^SKU-[0-9A-Z]+-[0-9A-Z]{3}$`, p.SKU)
	assert.Equal(t, "10", p.Price.String())
	assert.True(t, p.LowStock)

	h, err := e.stock.History(ctx, "user-a", p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, h.Data, 1)
	assert.Equal(t, entity.TransactionTypeInitial, h.Data[0].Type)
	assert.Equal(t, 5, h.Data[0].Quantity)
	assert.Equal(t, "Initial stock", h.Data[0].Description)

	empty := e.product(t, "user-a", storeID, "Gadget", "Tools", "1", 0)
	h, err = e.stock.History(ctx, "user-a", empty.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, h.Data, "sin cantidad inicial no hay entrada INITIAL")
}

func TestProductCreate_ValidacionesYPropiedad(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	storeID := e.store(t, "user-a", "Tienda A")
	e.product(t, "user-a", storeID, "Widget", "Tools", "1", 0)

	_, err := e.products.Create(ctx, "user-a", dto.CreateProductRequest{Name: "Widget", Category: "X", Price: money("1"), StoreID: storeID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.products.Create(ctx, "user-b", dto.CreateProductRequest{Name: "Otro", Category: "X", Price: money("1"), StoreID: storeID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.products.Create(ctx, "user-a", dto.CreateProductRequest{Name: "Otro", Category: "X", Price: money("1"), StoreID: "nada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.Create(ctx, "user-a", dto.CreateProductRequest{Name: "Otro", Category: "X", StoreID: storeID, Price: money("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin precio no se crea con 0 por omisión
	_, err = e.products.Create(ctx, "user-a", dto.CreateProductRequest{Name: "Sin precio", Category: "X", StoreID: storeID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductGetUpdateDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	storeID := e.store(t, "user-a", "Tienda A")
	p := e.product(t, "user-a", storeID, "Widget", "Tools", "2.50", 0)

	got, err := e.products.Get(ctx, "user-a", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda A", got.Store.Name)

	_, err = e.products.Get(ctx, "user-b", p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	name := "Widget Pro"
	price := decimal.RequireFromString("3.75")
	upd, err := e.products.Update(ctx, "user-a", p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", upd.Name)
	assert.Equal(t, "Tools", upd.Category)
	assert.True(t, upd.Price.Equal(price))

	require.NoError(t, e.products.Delete(ctx, "user-a", p.ID))
	_, err = e.products.Get(ctx, "user-a", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	withHistory := e.product(t, "user-a", storeID, "Con stock", "Tools", "1", 3)
	err = e.products.Delete(ctx, "user-a", withHistory.ID)
	assert.ErrorIs(t, err, domain.ErrHasHistory)
}

func TestProductList_FiltrosYAlcancePorUsuario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	storeA := e.store(t, "user-a", "Tienda A")
	storeB := e.store(t, "user-b", "Tienda B")
	e.product(t, "user-a", storeA, "Martillo", "Tools", "10", 50)
	e.product(t, "user-a", storeA, "Destornillador", "tools", "5", 3)
	e.product(t, "user-a", storeA, "Cable", "Electric", "1", 2)
	e.product(t, "user-b", storeB, "Martillo B", "Tools", "10", 1)

	all, err := e.products.List(ctx, "user-a", dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Pagination.Total)
	assert.Equal(t, "Cable", all.Data[0].Name, "más reciente primero")

	tools, err := e.products.List(ctx, "user-a", dto.ProductListQuery{Category: "TOOLS"})
	require.NoError(t, err)
	assert.Equal(t, 2, tools.Pagination.Total)

	low, err := e.products.List(ctx, "user-a", dto.ProductListQuery{Category: "tools", LowStock: true})
	require.NoError(t, err)
	require.Len(t, low.Data, 1)
	assert.Equal(t, "Destornillador", low.Data[0].Name)

	search, err := e.products.List(ctx, "user-a", dto.ProductListQuery{Search: "mart"})
	require.NoError(t, err)
	require.Len(t, search.Data, 1)
	assert.Equal(t, "Martillo", search.Data[0].Name)

	paged, err := e.products.List(ctx, "user-a", dto.ProductListQuery{PageRequest: dto.PageRequest{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, paged.Data, 1)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 2, Total: 3, Pages: 2}, paged.Pagination)
}

func TestStoreCreate_UnaPorUsuarioYNombreUnico(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.store(t, "user-a", "Tienda A")

	_, err := e.stores.Create(ctx, "user-a", dto.CreateStoreRequest{Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrStoreAlreadyExists)

	_, err = e.stores.Create(ctx, "user-b", dto.CreateStoreRequest{Name: "Tienda A"})
	assert.ErrorIs(t, err, domain.ErrStoreNameTaken)
}

func TestStoreGetUpdateYProductos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	storeA := e.store(t, "user-a", "Tienda A")
	e.store(t, "user-b", "Tienda B")
	e.product(t, "user-a", storeA, "Widget", "Tools", "1", 20)
	e.product(t, "user-a", storeA, "Tuerca", "Parts", "0.10", 4)

	detail, err := e.stores.Get(ctx, "user-a", storeA)
	require.NoError(t, err)
	assert.Len(t, detail.Products, 2)

	_, err = e.stores.Get(ctx, "user-b", storeA)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	taken := "Tienda B"
	_, err = e.stores.Update(ctx, "user-a", storeA, dto.UpdateStoreRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrStoreNameTaken)

	same := "Tienda A"
	addr := "Calle 1"
	upd, err := e.stores.Update(ctx, "user-a", storeA, dto.UpdateStoreRequest{Name: &same, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", upd.Address)

	low, err := e.stores.Products(ctx, "user-a", storeA, dto.StoreProductsQuery{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, "Tienda A", low.Store.Name)
	require.Len(t, low.Data, 1)
	assert.Equal(t, "Tuerca", low.Data[0].Name)

	list, err := e.stores.List(ctx, "user-a", dto.StoreListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, storeA, list.Data[0].ID)
}
