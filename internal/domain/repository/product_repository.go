package repository

import "github.com/invorya/inventra-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// QuantityInStock solo se modifica vía GetForUpdate + UpdateStock dentro de
// una transacción del ledger; Update no toca el stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido con un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija quantity_in_stock del producto.
	UpdateStock(id string, quantity int) error
	List() ([]*entity.Product, error)
	ListBelowReorderLevel() ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
