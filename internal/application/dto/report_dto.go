package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
// KPIs del mes en curso más la lista de productos en punto de reorden.
type DashboardSummaryDTO struct {
	TotalProducts  int `json:"total_products"`
	TotalSales     int `json:"total_sales"`
	TotalPurchases int `json:"total_purchases"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"` // ingresos brutos por ventas
	MonthlyUnits   int             `json:"monthly_units"`   // unidades vendidas
	MonthlySpend   decimal.Decimal `json:"monthly_spend"`   // gasto bruto en compras

	// Productos en o por debajo del punto de reorden
	LowStockProducts []LowStockProductDTO `json:"low_stock_products"`

	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// LowStockProductDTO producto en o por debajo del punto de reorden.
type LowStockProductDTO struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	QuantityInStock int    `json:"quantity_in_stock"`
	ReorderLevel    int    `json:"reorder_level"`
}

// SalesReportLineDTO línea del reporte de ventas (JSON y PDF).
type SalesReportLineDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	UnitsSold    int             `json:"units_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SalesReportDTO reporte de ventas de un período.
type SalesReportDTO struct {
	From         string               `json:"from"` // YYYY-MM-DD
	To           string               `json:"to"`   // YYYY-MM-DD
	Lines        []SalesReportLineDTO `json:"lines"`
	TotalRevenue decimal.Decimal      `json:"total_revenue"`
	TotalUnits   int                  `json:"total_units"`
}
