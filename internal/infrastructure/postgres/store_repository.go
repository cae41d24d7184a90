package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, user_id, name, COALESCE(description, ''), COALESCE(address, ''), created_at, updated_at`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda. Distingue las dos restricciones únicas por nombre de constraint.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stores (id, user_id, name, description, address, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)`,
		s.ID, s.UserID, s.Name, s.Description, s.Address, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return storeWriteError("insert store", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

// GetByUserID obtiene la tienda del usuario.
func (r *StoreRepo) GetByUserID(ctx context.Context, userID string) (*entity.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE user_id = $1`, userID)
}

// GetByName obtiene una tienda por nombre exacto.
func (r *StoreRepo) GetByName(ctx context.Context, name string) (*entity.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE name = $1`, name)
}

// Update actualiza nombre, descripción y dirección.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stores SET name = $2, description = NULLIF($3, ''), address = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Address, s.UpdatedAt,
	)
	if err != nil {
		return storeWriteError("update store", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tiendas filtradas por dueño y búsqueda, más recientes primero.
func (r *StoreRepo) List(ctx context.Context, f repository.StoreFilter) ([]*entity.Store, int, error) {
	var b filterBuilder
	if f.UserID != "" {
		b.add("user_id = ?", f.UserID)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		b.add("(name ILIKE ? OR description ILIKE ?)", p, p)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stores`+b.where(), b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	query := `SELECT ` + storeColumns + ` FROM stores` + b.where() + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + b.next(f.Limit) + ` OFFSET ` + b.next(f.Offset)
	}
	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

func (r *StoreRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

func storeWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		switch constraintName(err) {
		case "stores_user_id_key":
			return domain.ErrStoreAlreadyExists
		case "stores_name_key":
			return domain.ErrStoreNameTaken
		}
		return domain.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
