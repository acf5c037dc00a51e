package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta de un item por nombre.
type CreateSaleRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// SaleLineResponse línea de una venta.
type SaleLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number"`
	Subtotal  decimal.Decimal `json:"subtotal" swaggertype:"number"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	TotalPrice decimal.Decimal    `json:"total_price" swaggertype:"number"`
	SaleDate   time.Time          `json:"sale_date"`
	CreatedBy  string             `json:"created_by"`
	Lines      []SaleLineResponse `json:"lines"`
	InvoiceURL string             `json:"invoice_url"`
}

// SalesReportRequest entrada del reporte: la contraseña de dueño se exige en cada petición.
type SalesReportRequest struct {
	OwnerPassword string `json:"owner_password" validate:"required"`
}

// SalesReportResponse salida del reporte de ventas.
type SalesReportResponse struct {
	Total int            `json:"total"`
	Sales []SaleResponse `json:"sales"`
}
