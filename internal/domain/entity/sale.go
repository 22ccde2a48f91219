package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta. Al crearse resta QuantitySold del stock del
// producto, previa verificación de disponibilidad.
type Sale struct {
	ID           string
	ProductID    string
	QuantitySold int // >= 1
	SalePrice    decimal.Decimal
	SaleDate     time.Time
	CreatedBy    string // UserID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
