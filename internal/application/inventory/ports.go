package inventory

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el item y su movimiento de stock se persisten juntos o no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error) error
}
