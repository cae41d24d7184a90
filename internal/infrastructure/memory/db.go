// Package memory implementa los puertos de persistencia en memoria, con las mismas
// restricciones de unicidad y FK que el esquema PostgreSQL. Se usa en tests y en modo demo.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

// DB almacén en memoria. Las transacciones se serializan y se revierten con un snapshot.
type DB struct {
	mu   sync.Mutex
	txMu sync.Mutex
	seq  int64

	users    map[string]entity.User
	stores   map[string]entity.Store
	products map[string]entity.Product
	txns     []entity.Transaction
	order    map[string]int64 // orden de inserción por ID (desempate de created_at)

	// FailStoreCreate, si no es nil, se devuelve en el próximo StoreRepo.Create.
	FailStoreCreate error
}

// New crea un almacén vacío.
func New() *DB {
	return &DB{
		users:    make(map[string]entity.User),
		stores:   make(map[string]entity.Store),
		products: make(map[string]entity.Product),
		order:    make(map[string]int64),
	}
}

func (db *DB) track(id string) {
	db.seq++
	db.order[id] = db.seq
}

// newerFirst ordena por created_at desc y, a igualdad, por orden de inserción desc.
func (db *DB) newerFirst(idA string, a time.Time, idB string, b time.Time) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return db.order[idA] > db.order[idB]
}

// Users repositorio de usuarios.
func (db *DB) Users() *UserRepo { return &UserRepo{db: db} }

// Stores repositorio de tiendas.
func (db *DB) Stores() *StoreRepo { return &StoreRepo{db: db} }

// Products repositorio de productos.
func (db *DB) Products() *ProductRepo { return &ProductRepo{db: db} }

// Transactions repositorio del ledger.
func (db *DB) Transactions() *TransactionRepo { return &TransactionRepo{db: db} }

// TxRunner ejecutor de transacciones.
func (db *DB) TxRunner() *TxRunner { return &TxRunner{db: db} }

// ── Users ──────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ db *DB }

// Create persiste un usuario; email único.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.users[u.ID] = *u
	r.db.track(u.ID)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// Delete elimina el usuario y, en cascada, su tienda y productos.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.users, id)
	for sid, s := range r.db.stores {
		if s.UserID == id {
			delete(r.db.stores, sid)
			for pid, p := range r.db.products {
				if p.StoreID == sid {
					delete(r.db.products, pid)
				}
			}
		}
	}
	return nil
}

// ── Stores ─────────────────────────────────────────────────────────────────────

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación en memoria de StoreRepository.
type StoreRepo struct{ db *DB }

// Create persiste una tienda; user_id y name únicos.
func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.FailStoreCreate; err != nil {
		r.db.FailStoreCreate = nil
		return err
	}
	for _, existing := range r.db.stores {
		if existing.UserID == s.UserID {
			return domain.ErrStoreAlreadyExists
		}
		if existing.Name == s.Name {
			return domain.ErrStoreNameTaken
		}
	}
	r.db.stores[s.ID] = *s
	r.db.track(s.ID)
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetByUserID obtiene la tienda del usuario.
func (r *StoreRepo) GetByUserID(_ context.Context, userID string) (*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.stores {
		if s.UserID == userID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

// GetByName obtiene una tienda por nombre exacto.
func (r *StoreRepo) GetByName(_ context.Context, name string) (*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.stores {
		if s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

// Update actualiza nombre, descripción y dirección.
func (r *StoreRepo) Update(_ context.Context, s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, existing := range r.db.stores {
		if id != s.ID && existing.Name == s.Name {
			return domain.ErrStoreNameTaken
		}
	}
	if _, ok := r.db.stores[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.stores[s.ID] = *s
	return nil
}

// List tiendas del usuario con búsqueda y paginación.
func (r *StoreRepo) List(_ context.Context, f repository.StoreFilter) ([]*entity.Store, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []*entity.Store
	for _, s := range r.db.stores {
		if f.UserID != "" && s.UserID != f.UserID {
			continue
		}
		if f.Search != "" && !containsFold(s.Name, f.Search) && !containsFold(s.Description, f.Search) {
			continue
		}
		s := s
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool {
		return r.db.newerFirst(all[i].ID, all[i].CreatedAt, all[j].ID, all[j].CreatedAt)
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── Products ───────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct{ db *DB }

// Create persiste un producto; sku único y name único por tienda.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[p.StoreID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.products {
		if existing.SKU == p.SKU || (existing.StoreID == p.StoreID && existing.Name == p.Name) {
			return domain.ErrDuplicate
		}
	}
	r.db.products[p.ID] = *p
	r.db.track(p.ID)
	return nil
}

// GetWithStore obtiene el producto con su tienda.
func (r *ProductRepo) GetWithStore(_ context.Context, id string) (*entity.ProductWithStore, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &entity.ProductWithStore{Product: p, Store: r.db.stores[p.StoreID]}, nil
}

// GetForUpdate obtiene el producto; el bloqueo lo da la serialización del TxRunner.
func (r *ProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update actualiza los campos editables (no quantity).
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.db.products {
		if id != p.ID && existing.StoreID == current.StoreID && existing.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	current.Name = p.Name
	current.Category = p.Category
	current.Price = p.Price
	current.Description = p.Description
	current.ImageURL = p.ImageURL
	current.UpdatedAt = p.UpdatedAt
	r.db.products[p.ID] = current
	return nil
}

// UpdateQuantity fija la cantidad del producto.
func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrNegativeStock
	}
	p.Quantity = quantity
	p.UpdatedAt = at
	r.db.products[id] = p
	return nil
}

// Delete elimina el producto; falla si tiene movimientos (FK RESTRICT).
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.txns {
		if t.ProductID == id {
			return domain.ErrHasHistory
		}
	}
	delete(r.db.products, id)
	return nil
}

// List aplica los filtros combinados con AND y pagina.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.db.products {
		if f.UserID != "" && r.db.stores[p.StoreID].UserID != f.UserID {
			continue
		}
		if f.StoreID != "" && p.StoreID != f.StoreID {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Description, f.Search) {
			continue
		}
		if f.LowStock && p.Quantity > entity.LowStockThreshold {
			continue
		}
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool {
		return r.db.newerFirst(all[i].ID, all[i].CreatedAt, all[j].ID, all[j].CreatedAt)
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ListByStore todos los productos de la tienda.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	list, _, err := r.List(ctx, repository.ProductFilter{StoreID: storeID})
	return list, err
}

// ── Transactions ───────────────────────────────────────────────────────────────

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria del ledger.
type TransactionRepo struct{ db *DB }

// Create agrega una entrada; quantity > 0 y reference_number único.
func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if t.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := r.db.products[t.ProductID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.txns {
		if existing.ReferenceNumber == t.ReferenceNumber {
			return domain.ErrDuplicate
		}
	}
	r.db.txns = append(r.db.txns, *t)
	r.db.track(t.ID)
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *TransactionRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.Transaction, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []*entity.Transaction
	for _, t := range r.db.txns {
		if t.ProductID == productID {
			t := t
			all = append(all, &t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return r.db.newerFirst(all[i].ID, all[i].CreatedAt, all[j].ID, all[j].CreatedAt)
	})
	return page(all, limit, offset), len(all), nil
}

// CountByProduct cantidad de movimientos del producto.
func (r *TransactionRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, t := range r.db.txns {
		if t.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ── helpers ────────────────────────────────────────────────────────────────────

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func page[T any](all []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
