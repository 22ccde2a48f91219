package repository

import "github.com/invorya/inventra-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// List devuelve las ventas ordenadas por fecha descendente.
	List() ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
}
