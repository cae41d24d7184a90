// Package access implementa la verificación de propiedad User -> Store -> Product.
// Siempre se comprueba primero la existencia (NotFound) y después la propiedad (Forbidden).
package access

import (
	"context"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// OwnedProduct obtiene el producto con su tienda y verifica que pertenezca a userID.
func OwnedProduct(ctx context.Context, repo repository.ProductRepository, userID, productID string) (*entity.ProductWithStore, error) {
	p, err := repo.GetWithStore(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.Store.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// OwnedStore obtiene la tienda y verifica que pertenezca a userID.
func OwnedStore(ctx context.Context, repo repository.StoreRepository, userID, storeID string) (*entity.Store, error) {
	s, err := repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !s.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return s, nil
}
