package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. QuantityInStock es el
// stock inicial; después de la creación solo lo mueven compras y ventas.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	SKU             string          `json:"sku" validate:"required,max=255"`
	CategoryID      string          `json:"category_id" validate:"required"`
	SupplierID      string          `json:"supplier_id" validate:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"gte=0"`
	ReorderLevel    int             `json:"reorder_level" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No incluye QuantityInStock: el stock solo se mueve vía compras y ventas.
type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	SKU          string          `json:"sku" validate:"required,max=255"`
	CategoryID   string          `json:"category_id" validate:"required"`
	SupplierID   string          `json:"supplier_id" validate:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
}

// ProductResponse salida de un producto con sus relaciones.
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	SKU             string           `json:"sku"`
	CategoryID      string           `json:"category_id"`
	SupplierID      string           `json:"supplier_id"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	CostPrice       decimal.Decimal  `json:"cost_price"`
	QuantityInStock int              `json:"quantity_in_stock"`
	ReorderLevel    int              `json:"reorder_level"`
	Category        *CategorySummary `json:"category,omitempty"`
	Supplier        *SupplierSummary `json:"supplier,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductSummary referencia mínima a un producto en respuestas anidadas.
type ProductSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	QuantityInStock int    `json:"quantity_in_stock"`
}
