package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/internal/domain/entity"
	"github.com/invorya/inventra-api/internal/domain/repository"
	"github.com/invorya/inventra-api/pkg/logger"
	"github.com/invorya/inventra-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

// PurchaseUseCase registra compras de forma transaccional: cada alta suma la
// cantidad al stock del producto, cada edición revierte el ajuste anterior
// antes de aplicar el nuevo y cada baja revierte el ajuste del registro.
type PurchaseUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	userRepo     repository.UserRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// Create registra una compra y suma Quantity al stock del producto, en una
// sola transacción. Producto o proveedor inexistente abortan antes de abrir
// la transacción.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	date, err := time.Parse(dateLayout, in.PurchaseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
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
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SupplierID:    in.SupplierID,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		PurchaseDate:  date,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var stockAfter int
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		// Bloquea la fila del producto y aplica el delta dentro de la misma tx
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		stockAfter = locked.QuantityInStock + in.Quantity
		return productRepo.UpdateStock(in.ProductID, stockAfter)
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchasesCreatedTotal.Inc()
	metrics.StockAdjustmentsTotal.WithLabelValues("apply_purchase").Inc()

	product.QuantityInStock = stockAfter
	return uc.toResponse(purchase, product, supplier), nil
}

// Update edita una compra: revierte la cantidad ANTERIOR sobre el producto
// ANTERIOR, persiste los campos nuevos y aplica la cantidad NUEVA sobre el
// producto NUEVO (pueden ser filas distintas). Todo en una transacción.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	date, err := time.Parse(dateLayout, in.PurchaseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	newProduct, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if newProduct == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	oldProductID := purchase.ProductID
	oldQuantity := purchase.Quantity

	var newStock int
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		// 1. Revertir el ajuste anterior sobre el producto anterior
		oldLocked, err := productRepo.GetForUpdate(oldProductID)
		if err != nil {
			return err
		}
		if oldLocked == nil {
			return domain.ErrNotFound
		}
		reversed := oldLocked.QuantityInStock - oldQuantity
		if reversed < 0 {
			// Sin clamp: las ventas ya pudieron consumir las unidades compradas
			uc.log.Warn().
				Str("purchase_id", id).
				Str("product_id", oldProductID).
				Int("stock", reversed).
				Msg("reversión de compra deja stock negativo")
		}
		if err := productRepo.UpdateStock(oldProductID, reversed); err != nil {
			return err
		}

		// 2. Persistir los campos nuevos del registro
		purchase.ProductID = in.ProductID
		purchase.SupplierID = in.SupplierID
		purchase.Quantity = in.Quantity
		purchase.PurchasePrice = in.PurchasePrice
		purchase.PurchaseDate = date
		purchase.UpdatedAt = time.Now()
		if err := purchaseRepo.Update(purchase); err != nil {
			return err
		}

		// 3. Aplicar el ajuste nuevo sobre el producto nuevo.
		// Si el producto no cambió, la fila ya está bloqueada y la lectura
		// dentro de la tx ve la reversión del paso 1.
		newLocked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if newLocked == nil {
			return domain.ErrNotFound
		}
		newStock = newLocked.QuantityInStock + in.Quantity
		return productRepo.UpdateStock(in.ProductID, newStock)
	})
	if err != nil {
		return nil, err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues("reverse_purchase").Inc()
	metrics.StockAdjustmentsTotal.WithLabelValues("apply_purchase").Inc()

	newProduct.QuantityInStock = newStock
	return uc.toResponse(purchase, newProduct, supplier), nil
}

// Delete elimina una compra revirtiendo su ajuste de stock en la misma
// transacción que borra el registro.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		locked, err := productRepo.GetForUpdate(purchase.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		reversed := locked.QuantityInStock - purchase.Quantity
		if reversed < 0 {
			uc.log.Warn().
				Str("purchase_id", id).
				Str("product_id", purchase.ProductID).
				Int("stock", reversed).
				Msg("reversión de compra deja stock negativo")
		}
		if err := productRepo.UpdateStock(purchase.ProductID, reversed); err != nil {
			return err
		}
		return purchaseRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues("reverse_purchase").Inc()
	return nil
}

// GetByID obtiene una compra con sus relaciones.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	product, _ := uc.productRepo.GetByID(purchase.ProductID)
	supplier, _ := uc.supplierRepo.GetByID(purchase.SupplierID)
	return uc.toResponse(purchase, product, supplier), nil
}

// List devuelve todas las compras con sus relaciones.
func (uc *PurchaseUseCase) List() ([]dto.PurchaseResponse, error) {
	purchases, err := uc.purchaseRepo.List()
	if err != nil {
		return nil, err
	}
	products := map[string]*entity.Product{}
	suppliers := map[string]*entity.Supplier{}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		product, ok := products[p.ProductID]
		if !ok {
			product, _ = uc.productRepo.GetByID(p.ProductID)
			products[p.ProductID] = product
		}
		supplier, ok := suppliers[p.SupplierID]
		if !ok {
			supplier, _ = uc.supplierRepo.GetByID(p.SupplierID)
			suppliers[p.SupplierID] = supplier
		}
		out = append(out, *uc.toResponse(p, product, supplier))
	}
	return out, nil
}

func (uc *PurchaseUseCase) toResponse(p *entity.Purchase, product *entity.Product, supplier *entity.Supplier) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		ProductID:     p.ProductID,
		SupplierID:    p.SupplierID,
		Quantity:      p.Quantity,
		PurchasePrice: p.PurchasePrice,
		PurchaseDate:  p.PurchaseDate.Format(dateLayout),
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if product != nil {
		resp.Product = &dto.ProductSummary{
			ID:              product.ID,
			Name:            product.Name,
			SKU:             product.SKU,
			QuantityInStock: product.QuantityInStock,
		}
	}
	if supplier != nil {
		resp.Supplier = &dto.SupplierSummary{ID: supplier.ID, Name: supplier.Name}
	}
	if p.CreatedBy != "" && uc.userRepo != nil {
		if creator, _ := uc.userRepo.GetByID(p.CreatedBy); creator != nil {
			resp.Creator = &dto.UserSummary{ID: creator.ID, Name: creator.Name}
		}
	}
	return resp
}
