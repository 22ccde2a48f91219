package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	QuantitySold int             `json:"quantity_sold" validate:"required,min=1"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     string          `json:"sale_date" validate:"required,datetime=2006-01-02"`
}

// UpdateSaleRequest entrada para editar una venta.
type UpdateSaleRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	QuantitySold int             `json:"quantity_sold" validate:"required,min=1"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     string          `json:"sale_date" validate:"required,datetime=2006-01-02"`
}

// SaleResponse salida de una venta con sus relaciones.
type SaleResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	QuantitySold int             `json:"quantity_sold"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     string          `json:"sale_date"` // YYYY-MM-DD
	CreatedBy    string          `json:"created_by"`
	Product      *ProductSummary `json:"product,omitempty"`
	Creator      *UserSummary    `json:"creator,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
