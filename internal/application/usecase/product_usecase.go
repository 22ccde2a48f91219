package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/internal/domain/entity"
	"github.com/invorya/inventra-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se fija al
// crear; después lo mueven exclusivamente compras y ventas vía el ledger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un producto con su stock inicial. SKU único; la categoría y el
// proveedor deben existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		SKU:             in.SKU,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		Description:     in.Description,
		Price:           in.Price,
		CostPrice:       in.CostPrice,
		QuantityInStock: in.QuantityInStock,
		ReorderLevel:    in.ReorderLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, category, supplier), nil
}

// GetByID obtiene un producto con sus relaciones.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	category, _ := uc.categoryRepo.GetByID(product.CategoryID)
	supplier, _ := uc.supplierRepo.GetByID(product.SupplierID)
	return uc.toResponse(product, category, supplier), nil
}

// List devuelve todos los productos con sus relaciones.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	categories := map[string]*entity.Category{}
	suppliers := map[string]*entity.Supplier{}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		category, ok := categories[p.CategoryID]
		if !ok {
			category, _ = uc.categoryRepo.GetByID(p.CategoryID)
			categories[p.CategoryID] = category
		}
		supplier, ok := suppliers[p.SupplierID]
		if !ok {
			supplier, _ = uc.supplierRepo.GetByID(p.SupplierID)
			suppliers[p.SupplierID] = supplier
		}
		out = append(out, *uc.toResponse(p, category, supplier))
	}
	return out, nil
}

// Update actualiza un producto sin tocar quantity_in_stock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if other, _ := uc.repo.GetBySKU(in.SKU); other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.SKU = in.SKU
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.Description = in.Description
	product.Price = in.Price
	product.CostPrice = in.CostPrice
	product.ReorderLevel = in.ReorderLevel
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, category, supplier), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) toResponse(p *entity.Product, category *entity.Category, supplier *entity.Supplier) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		Description:     p.Description,
		Price:           p.Price,
		CostPrice:       p.CostPrice,
		QuantityInStock: p.QuantityInStock,
		ReorderLevel:    p.ReorderLevel,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if category != nil {
		resp.Category = &dto.CategorySummary{ID: category.ID, Name: category.Name}
	}
	if supplier != nil {
		resp.Supplier = &dto.SupplierSummary{ID: supplier.ID, Name: supplier.Name}
	}
	return resp
}
