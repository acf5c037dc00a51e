package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopItemResult resultado agregado del item más vendido.
type TopItemResult struct {
	ItemName      string
	TotalQuantity int64
}

// ReportRepository consultas de solo lectura para el dashboard.
type ReportRepository interface {
	// RevenueSince suma price × quantity de las líneas de ventas con sale_date >= since. Cero si no hay filas.
	RevenueSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error)
	// TopSellingItem devuelve nil si la tienda no tiene ventas.
	TopSellingItem(ctx context.Context, userID string) (*TopItemResult, error)
}
