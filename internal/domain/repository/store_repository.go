package repository

import (
	"context"

	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
)

// StoreFilter filtros para listar tiendas de un usuario.
type StoreFilter struct {
	UserID string
	Search string // substring case-insensitive sobre name o description
	Limit  int
	Offset int
}

// StoreRepository define el puerto de persistencia para Store.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Store, error)
	GetByName(ctx context.Context, name string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// List devuelve la página pedida y el total sin paginar.
	List(ctx context.Context, f StoreFilter) ([]*entity.Store, int, error)
}
