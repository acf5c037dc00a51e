package sales

import (
	"context"

	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye items, ventas y libro de stock.
// Si fn retorna error, nada de lo escrito dentro de la transacción queda persistido.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error) error
}
