package repository

import "github.com/invorya/inventra-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByEmail(email string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	// CountProducts devuelve cuántos productos referencian al proveedor
	// (un proveedor con productos no puede eliminarse).
	CountProducts(id string) (int, error)
}
