package postgres

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create registra un movimiento. No hay Update ni Delete.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, user_id, item_id, type, quantity, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, t.ID, t.UserID, t.ItemID, t.Type, t.Quantity, t.Date, t.CreatedBy)
	return wrapErr("insert stock transaction", err)
}

// ListByItem movimientos de un item de la tienda, más recientes primero.
func (r *StockTransactionRepo) ListByItem(ctx context.Context, userID, itemID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, user_id, item_id, type, quantity, date, created_by
		FROM stock_transactions
		WHERE user_id = $1 AND item_id = $2
		ORDER BY date DESC, id`
	rows, err := r.q.Query(ctx, query, userID, itemID)
	if err != nil {
		return nil, wrapErr("list stock transactions", err)
	}
	defer rows.Close()
	list := make([]*entity.StockTransaction, 0)
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.ItemID, &t.Type, &t.Quantity, &t.Date, &t.CreatedBy); err != nil {
			return nil, wrapErr("scan stock transaction", err)
		}
		list = append(list, &t)
	}
	return list, wrapErr("list stock transactions", rows.Err())
}
