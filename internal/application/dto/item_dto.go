package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para dar de alta un item.
type CreateItemRequest struct {
	Name      string          `json:"name" validate:"required,max=120"`
	Quantity  int             `json:"quantity" validate:"min=0"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number"`
}

// RestockRequest entrada para reponer stock de un item.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number"`
	LowStock  bool            `json:"low_stock"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockTransactionResponse salida de un movimiento del libro de stock.
type StockTransactionResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
}
