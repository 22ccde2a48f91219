package entity

import "time"

// Supplier representa un proveedor. Referenciado por Product y Purchase;
// el ledger de stock nunca lo muta.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string // único
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
