package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// QuantityInStock solo se muta a través del ledger (compras/ventas);
// ReorderLevel es informativo para el reporte de stock bajo.
type Product struct {
	ID              string
	Name            string
	SKU             string // código único
	CategoryID      string
	SupplierID      string
	Description     string
	Price           decimal.Decimal // precio de venta
	CostPrice       decimal.Decimal // costo de compra
	QuantityInStock int
	ReorderLevel    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BelowReorderLevel indica si el producto está en o por debajo del punto de reorden.
func (p *Product) BelowReorderLevel() bool {
	return p.QuantityInStock <= p.ReorderLevel
}
