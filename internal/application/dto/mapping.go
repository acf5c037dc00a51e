package dto

import (
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ToUserResponse mapea una entidad User a su salida pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ShopID:    u.ShopID(),
		ShopName:  u.ShopName,
		CreatedAt: u.CreatedAt,
	}
	if u.LogoURL != nil {
		out.LogoURL = *u.LogoURL
	}
	return out
}

// ToItemResponse mapea un Item marcando si está en stock bajo.
func ToItemResponse(i *entity.Item, lowStockThreshold int) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		LowStock:  i.IsLowStock(lowStockThreshold),
		UpdatedAt: i.UpdatedAt,
	}
}

// ToItemResponses mapea una lista de items; nunca devuelve nil.
func ToItemResponses(items []*entity.Item, lowStockThreshold int) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i, lowStockThreshold))
	}
	return out
}

// ToStockTransactionResponse mapea un movimiento del libro.
func ToStockTransactionResponse(t *entity.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		Date:      t.Date,
		CreatedBy: t.CreatedBy,
	}
}

// ToSaleResponse arma la salida de una venta con las líneas que le pertenecen.
func ToSaleResponse(s *entity.Sale, lines []*entity.SaleLine) SaleResponse {
	out := SaleResponse{
		ID:         s.ID,
		TotalPrice: s.TotalPrice,
		SaleDate:   s.SaleDate,
		CreatedBy:  s.CreatedBy,
		Lines:      make([]SaleLineResponse, 0, len(lines)),
		InvoiceURL: InvoiceURL(s.ID),
	}
	for _, l := range lines {
		if l.SaleID != s.ID {
			continue
		}
		out.Lines = append(out.Lines, SaleLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Subtotal:  l.Subtotal(),
		})
	}
	return out
}

// InvoiceURL ruta de descarga del PDF de una venta.
func InvoiceURL(saleID string) string {
	return "/api/invoices/" + saleID
}

// Money redondea un monto a 2 decimales para salida.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
