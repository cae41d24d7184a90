package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storekeeper-api/internal/application/access"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// StoreUseCase casos de uso de tiendas. Cada usuario tiene como máximo una tienda.
type StoreUseCase struct {
	repo        repository.StoreRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, productRepo repository.ProductRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo, productRepo: productRepo, now: time.Now}
}

// Create crea la tienda del usuario.
func (uc *StoreUseCase) Create(ctx context.Context, userID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrStoreAlreadyExists
	}
	taken, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, domain.ErrStoreNameTaken
	}
	now := uc.now()
	store := &entity.Store{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: in.Description,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	out := dto.FromStore(store)
	return &out, nil
}

// List tiendas del usuario.
func (uc *StoreUseCase) List(ctx context.Context, userID string, q dto.StoreListQuery) (*dto.StoreListResponse, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, repository.StoreFilter{
		UserID: userID,
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		data = append(data, dto.FromStore(s))
	}
	return &dto.StoreListResponse{Data: data, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// Get detalle de la tienda con todos sus productos.
func (uc *StoreUseCase) Get(ctx context.Context, userID, storeID string) (*dto.StoreDetailResponse, error) {
	store, err := access.OwnedStore(ctx, uc.repo, userID, storeID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StoreDetailResponse{StoreResponse: dto.FromStore(store), Products: dto.FromProducts(products)}, nil
}

// Update actualización parcial; el nombre sigue siendo único en el sistema.
func (uc *StoreUseCase) Update(ctx context.Context, userID, storeID string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := access.OwnedStore(ctx, uc.repo, userID, storeID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		if name != store.Name {
			taken, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if taken != nil {
				return nil, domain.ErrStoreNameTaken
			}
		}
		store.Name = name
	}
	if in.Description != nil {
		store.Description = *in.Description
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	store.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	out := dto.FromStore(store)
	return &out, nil
}

// Products productos de una tienda del usuario, con filtros y paginación.
func (uc *StoreUseCase) Products(ctx context.Context, userID, storeID string, q dto.StoreProductsQuery) (*dto.StoreProductsResponse, error) {
	store, err := access.OwnedStore(ctx, uc.repo, userID, storeID)
	if err != nil {
		return nil, err
	}
	q.Normalize()
	list, total, err := uc.productRepo.List(ctx, repository.ProductFilter{
		StoreID:  store.ID,
		Category: q.Category,
		Search:   q.Search,
		LowStock: q.LowStock,
		Limit:    q.Limit,
		Offset:   q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.StoreProductsResponse{
		Store:      dto.RefOf(store),
		Data:       dto.FromProducts(list),
		Pagination: dto.NewPagination(q.PageRequest, total),
	}, nil
}
