package repository

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
)

// StockTransactionRepository es el libro de movimientos (append-only).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	ListByItem(ctx context.Context, userID, itemID string) ([]*entity.StockTransaction, error)
}
