package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. TotalPrice es una foto al momento de la venta.
type Sale struct {
	ID         string
	UserID     string // tienda
	CreatedBy  string // usuario que registró la venta
	TotalPrice decimal.Decimal
	SaleDate   time.Time
}

// SaleItem es una línea de venta. Price es el precio unitario al momento de la venta,
// desacoplado de cambios posteriores en Item.UnitPrice.
type SaleItem struct {
	ID       string
	SaleID   string
	ItemID   string
	Quantity int
	Price    decimal.Decimal
}

// Subtotal devuelve Price × Quantity.
func (si SaleItem) Subtotal() decimal.Decimal {
	return si.Price.Mul(decimal.NewFromInt(int64(si.Quantity)))
}

// SaleLine es una línea de venta enriquecida con el nombre del item (lectura).
type SaleLine struct {
	SaleItem
	ItemName string
}
