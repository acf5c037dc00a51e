package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDocument representación estructurada de la factura de una venta.
// Es lo único que recibe el motor de render: no conoce repositorios ni entidades.
type InvoiceDocument struct {
	SaleID   string
	Date     time.Time
	ShopName string
	LogoPath string // ruta local del logo; vacío si la tienda no tiene
	SoldBy   string
	Lines    []InvoiceLine
	Total    decimal.Decimal
}

// InvoiceLine una línea de la factura.
type InvoiceLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// InvoiceRenderer convierte el documento a PDF. Es un colaborador opaco (maroto en proceso,
// o un binario externo como wkhtmltopdf).
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// LogoLocator resuelve la URL pública del logo a un archivo local legible por el renderer.
type LogoLocator interface {
	LocalPath(logoURL string) (string, bool)
}
