package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario de una tienda.
// Quantity nunca baja de cero (CHECK en la tabla y guardas en las ventas).
type Item struct {
	ID        string
	UserID    string // tienda dueña del item
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica si la cantidad está en o por debajo del umbral.
func (i *Item) IsLowStock(threshold int) bool {
	return i.Quantity <= threshold
}
