package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest entrada para registrar una compra.
type CreatePurchaseRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	SupplierID    string          `json:"supplier_id" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
}

// UpdatePurchaseRequest entrada para editar una compra. El producto puede
// cambiar: la reversión apunta al producto anterior y el nuevo ajuste al nuevo.
type UpdatePurchaseRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	SupplierID    string          `json:"supplier_id" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
}

// PurchaseResponse salida de una compra con sus relaciones.
type PurchaseResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	SupplierID    string           `json:"supplier_id"`
	Quantity      int              `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  string           `json:"purchase_date"` // YYYY-MM-DD
	CreatedBy     string           `json:"created_by"`
	Product       *ProductSummary  `json:"product,omitempty"`
	Supplier      *SupplierSummary `json:"supplier,omitempty"`
	Creator       *UserSummary     `json:"creator,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
