package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesLineResult línea agregada de ventas por producto (para el reporte PDF).
type SalesLineResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	UnitsSold    int
	TotalRevenue decimal.Decimal
}

// ReportRepository consultas de solo lectura para el dashboard y reportes.
type ReportRepository interface {
	// CountEntities devuelve totales de productos, ventas y compras.
	CountEntities(ctx context.Context) (products, sales, purchases int, err error)
	// GetSalesMetrics devuelve ingresos brutos y unidades vendidas del período.
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, units int, err error)
	// GetPurchaseMetrics devuelve el gasto bruto en compras del período.
	GetPurchaseMetrics(ctx context.Context, start, end time.Time) (spend decimal.Decimal, err error)
	// GetSalesByProduct agrega las ventas del período por producto, ordenadas por ingreso.
	GetSalesByProduct(ctx context.Context, start, end time.Time) ([]SalesLineResult, error)
}
