package entity

import "time"

// Tipos de movimiento de stock.
const (
	StockTransactionIn  = "in"  // entrada
	StockTransactionOut = "out" // salida
)

// StockTransaction es un registro de auditoría (append-only) de un cambio de cantidad.
type StockTransaction struct {
	ID        string
	UserID    string // tienda
	ItemID    string
	Type      string
	Quantity  int
	Date      time.Time
	CreatedBy string
}
