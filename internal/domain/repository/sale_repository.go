package repository

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	// ListByUser devuelve las ventas de la tienda, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Sale, error)
	// ListLines devuelve las líneas (con nombre de item) de las ventas indicadas.
	ListLines(ctx context.Context, saleIDs []string) ([]*entity.SaleLine, error)
}
