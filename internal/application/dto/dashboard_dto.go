package dto

import "github.com/shopspring/decimal"

// TopItemResponse item más vendido (por unidades).
type TopItemResponse struct {
	ItemName      string `json:"item_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DashboardResponse resumen de la tienda: inventario, alertas de stock bajo y ventas del día.
type DashboardResponse struct {
	Items             []ItemResponse   `json:"items"`
	LowStockItems     []ItemResponse   `json:"low_stock_items"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	TodayRevenue      decimal.Decimal  `json:"today_revenue" swaggertype:"number"`
	TopItem           *TopItemResponse `json:"top_item"`
}
