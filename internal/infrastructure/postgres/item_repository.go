package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, user_id, name, quantity, unit_price, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create inserta el item. Nombre repetido en la tienda -> domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	return wrapErr("insert item", err)
}

// GetByID obtiene un item de la tienda.
func (r *ItemRepo) GetByID(ctx context.Context, userID, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 AND id = $2`
	return r.findOne(ctx, "get item", query, userID, id)
}

// GetByIDForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 AND id = $2 FOR UPDATE`
	return r.findOne(ctx, "get item for update", query, userID, id)
}

// GetByNameForUpdate obtiene el item por nombre y bloquea la fila. Las ventas llegan por nombre.
func (r *ItemRepo) GetByNameForUpdate(ctx context.Context, userID, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 AND name = $2 FOR UPDATE`
	return r.findOne(ctx, "get item by name for update", query, userID, name)
}

// ListByUser lista los items de la tienda ordenados por nombre.
func (r *ItemRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 ORDER BY name`
	return r.list(ctx, "list items", query, userID)
}

// ListLowStock lista los items con quantity <= threshold, los más escasos primero.
func (r *ItemRepo) ListLowStock(ctx context.Context, userID string, threshold int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE user_id = $1 AND quantity <= $2
		ORDER BY quantity, name`
	return r.list(ctx, "list low stock items", query, userID, threshold)
}

// AdjustQuantity suma delta solo si el resultado no queda negativo; si no, domain.ErrConflict.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, userID, id string, delta int) (int, error) {
	query := `
		UPDATE items SET quantity = quantity + $3, updated_at = now()
		WHERE user_id = $1 AND id = $2 AND quantity + $3 >= 0
		RETURNING quantity`
	var qty int
	if err := r.q.QueryRow(ctx, query, userID, id, delta).Scan(&qty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrConflict
		}
		return 0, wrapErr("adjust item quantity", err)
	}
	return qty, nil
}

func (r *ItemRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return &it, nil
}

func (r *ItemRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, wrapErr("scan item", err)
		}
		list = append(list, &it)
	}
	return list, wrapErr(op, rows.Err())
}
