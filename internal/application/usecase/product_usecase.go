package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storekeeper-api/internal/application/access"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/inventory"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	ledger "github.com/jhoicas/storekeeper-api/internal/domain/inventory"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad solo cambia vía movimientos de stock.
type ProductUseCase struct {
	txRunner  inventory.TxRunner
	repo      repository.ProductRepository
	storeRepo repository.StoreRepository
	txnRepo   repository.TransactionRepository
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	txnRepo repository.TransactionRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, storeRepo: storeRepo, txnRepo: txnRepo, now: time.Now}
}

// Create crea un producto en una tienda del usuario. Si la cantidad inicial es mayor a cero
// registra una entrada INITIAL en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price == nil {
		return nil, fmt.Errorf("%w: el precio es obligatorio", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if _, err := access.OwnedStore(ctx, uc.storeRepo, userID, in.StoreID); err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		StoreID:     in.StoreID,
		SKU:         ledger.NewSKU(now),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price.Round(2),
		Quantity:    in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txnRepo repository.TransactionRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity == 0 {
			return nil
		}
		return txnRepo.Create(ctx, &entity.Transaction{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			ReferenceNumber: ledger.NewReferenceNumber(now),
			Quantity:        product.Quantity,
			Type:            entity.TransactionTypeInitial,
			Status:          entity.TransactionStatusCompleted,
			Description:     ledger.InitialStockDescription,
			CreatedAt:       now,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un producto con ese nombre en la tienda", domain.ErrConflict)
		}
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Get obtiene el detalle de un producto del usuario.
func (uc *ProductUseCase) Get(ctx context.Context, userID, productID string) (*dto.ProductDetailResponse, error) {
	p, err := access.OwnedProduct(ctx, uc.repo, userID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: dto.FromProduct(&p.Product),
		Store:           dto.RefOf(&p.Store),
	}, nil
}

// List lista los productos de todas las tiendas del usuario con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, userID string, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		UserID:   userID,
		StoreID:  q.StoreID,
		Category: q.Category,
		Search:   q.Search,
		LowStock: q.LowStock,
		Limit:    q.Limit,
		Offset:   q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Data:       dto.FromProducts(list),
		Pagination: dto.NewPagination(q.PageRequest, total),
	}, nil
}

// Update actualiza parcialmente un producto. No permite modificar la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, userID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	owned, err := access.OwnedProduct(ctx, uc.repo, userID, productID)
	if err != nil {
		return nil, err
	}
	product := owned.Product
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = in.Price.Round(2)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, &product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un producto con ese nombre en la tienda", domain.ErrConflict)
		}
		return nil, err
	}
	out := dto.FromProduct(&product)
	return &out, nil
}

// Delete elimina un producto sin movimientos. El ledger es inmutable: con historial devuelve ErrHasHistory.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, productID string) error {
	if _, err := access.OwnedProduct(ctx, uc.repo, userID, productID); err != nil {
		return err
	}
	n, err := uc.txnRepo.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrHasHistory
	}
	return uc.repo.Delete(ctx, productID)
}
