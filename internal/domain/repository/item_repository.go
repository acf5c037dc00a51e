package repository

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item.
// Todas las consultas están acotadas a la tienda (userID); nunca se leen items de otra tienda.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, userID, id string) (*entity.Item, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Item, error)
	ListLowStock(ctx context.Context, userID string, threshold int) ([]*entity.Item, error)
	// GetByNameForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
	GetByNameForUpdate(ctx context.Context, userID, name string) (*entity.Item, error)
	GetByIDForUpdate(ctx context.Context, userID, id string) (*entity.Item, error)
	// AdjustQuantity suma delta a la cantidad. Si el resultado quedaría negativo devuelve domain.ErrConflict.
	AdjustQuantity(ctx context.Context, userID, id string, delta int) (newQuantity int, err error)
}
