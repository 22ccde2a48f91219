package repository

import "github.com/invorya/inventra-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	List() ([]*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	Delete(id string) error
}
