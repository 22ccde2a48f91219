package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/invorya/inventra-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard y el reporte de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// CountEntities devuelve los totales de productos, ventas y compras en una sola consulta.
func (r *ReportRepo) CountEntities(ctx context.Context) (products, sales, purchases int, err error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)  AS total_products,
	    (SELECT COUNT(*) FROM sales)     AS total_sales,
	    (SELECT COUNT(*) FROM purchases) AS total_purchases`

	if err = r.pool.QueryRow(ctx, query).Scan(&products, &sales, &purchases); err != nil {
		return 0, 0, 0, fmt.Errorf("report.CountEntities: %w", err)
	}
	return products, sales, purchases, nil
}

// GetSalesMetrics devuelve ingresos brutos y unidades vendidas del período.
// Fórmula de ingresos: SUM(quantity_sold × sale_price).
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, units int, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity_sold * sale_price), 0) AS revenue,
	    COALESCE(SUM(quantity_sold), 0)              AS units
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2`

	if err = r.pool.QueryRow(ctx, query, start, end).Scan(&revenue, &units); err != nil {
		return decimal.Zero, 0, fmt.Errorf("report.GetSalesMetrics: %w", err)
	}
	return revenue, units, nil
}

// GetPurchaseMetrics devuelve el gasto bruto en compras del período.
func (r *ReportRepo) GetPurchaseMetrics(ctx context.Context, start, end time.Time) (spend decimal.Decimal, err error) {
	const query = `
	SELECT COALESCE(SUM(quantity * purchase_price), 0) AS spend
	FROM purchases
	WHERE purchase_date BETWEEN $1 AND $2`

	if err = r.pool.QueryRow(ctx, query, start, end).Scan(&spend); err != nil {
		return decimal.Zero, fmt.Errorf("report.GetPurchaseMetrics: %w", err)
	}
	return spend, nil
}

// GetSalesByProduct agrega las ventas del período por producto, ordenadas por ingreso descendente.
func (r *ReportRepo) GetSalesByProduct(ctx context.Context, start, end time.Time) ([]repository.SalesLineResult, error) {
	const query = `
	SELECT
	    p.id                                 AS product_id,
	    p.sku                                AS sku,
	    p.name                               AS product_name,
	    SUM(s.quantity_sold)                 AS units_sold,
	    SUM(s.quantity_sold * s.sale_price)  AS total_revenue
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.sale_date BETWEEN $1 AND $2
	GROUP BY p.id, p.sku, p.name
	ORDER BY total_revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.GetSalesByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesLineResult
	for rows.Next() {
		var row repository.SalesLineResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.UnitsSold,
			&row.TotalRevenue,
		); err != nil {
			return nil, fmt.Errorf("report.GetSalesByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
