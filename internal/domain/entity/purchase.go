package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor. Al crearse suma Quantity al
// stock del producto; al editarse o eliminarse el ajuste previo se revierte.
type Purchase struct {
	ID            string
	ProductID     string
	SupplierID    string
	Quantity      int // >= 1
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	CreatedBy     string // UserID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
