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

// SaleUseCase registra ventas de forma transaccional. Toda venta verifica la
// disponibilidad efectiva antes de abrir la transacción y la re-verifica con
// la fila bloqueada dentro de ella, así dos ventas concurrentes sobre el
// mismo producto no pueden dejar stock negativo.
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	log         *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// Create registra una venta y resta QuantitySold del stock del producto.
// Si el stock no alcanza devuelve InsufficientStockError con la cantidad
// disponible, sin abrir la transacción.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	date, err := time.Parse(dateLayout, in.SaleDate)
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
	if product.QuantityInStock < in.QuantitySold {
		metrics.InsufficientStockTotal.Inc()
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Requested: in.QuantitySold,
			Available: product.QuantityInStock,
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		QuantitySold: in.QuantitySold,
		SalePrice:    in.SalePrice,
		SaleDate:     date,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var stockAfter int
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Re-verificación con la fila bloqueada: cierra la ventana entre el
		// check de arriba y el write frente a ventas concurrentes.
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.QuantityInStock < in.QuantitySold {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.QuantitySold,
				Available: locked.QuantityInStock,
			}
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		stockAfter = locked.QuantityInStock - in.QuantitySold
		return productRepo.UpdateStock(in.ProductID, stockAfter)
	})
	if err != nil {
		if ise, ok := domain.IsInsufficientStock(err); ok {
			// El chequeo previo pasó pero la fila bloqueada ya no alcanza:
			// otra venta consumió el stock en el medio.
			metrics.InsufficientStockTotal.Inc()
			uc.log.Warn().
				Str("product_id", in.ProductID).
				Int("requested", ise.Requested).
				Int("available", ise.Available).
				Msg("venta rechazada en la re-verificación transaccional")
		}
		return nil, err
	}

	metrics.SalesCreatedTotal.Inc()
	metrics.StockAdjustmentsTotal.WithLabelValues("apply_sale").Inc()

	product.QuantityInStock = stockAfter
	return uc.toResponse(sale, product), nil
}

// Update edita una venta. La disponibilidad efectiva se calcula sobre la
// lectura previa a la reversión: stock actual + cantidad vendida anterior
// cuando el producto no cambia; stock actual del producto nuevo cuando sí.
// La edición revierte la cantidad anterior sobre el producto anterior y
// aplica la nueva sobre el producto nuevo, todo en una transacción.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	date, err := time.Parse(dateLayout, in.SaleDate)
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

	// Disponibilidad efectiva antes de mutar nada: las unidades de la venta
	// anterior se devuelven provisionalmente si el producto es el mismo.
	effectiveAvailable := newProduct.QuantityInStock
	if in.ProductID == sale.ProductID {
		effectiveAvailable += sale.QuantitySold
	}
	if in.QuantitySold > effectiveAvailable {
		metrics.InsufficientStockTotal.Inc()
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Requested: in.QuantitySold,
			Available: effectiveAvailable,
		}
	}

	oldProductID := sale.ProductID
	oldQuantity := sale.QuantitySold

	var newStock int
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1. Revertir: devolver las unidades de la venta anterior
		oldLocked, err := productRepo.GetForUpdate(oldProductID)
		if err != nil {
			return err
		}
		if oldLocked == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(oldProductID, oldLocked.QuantityInStock+oldQuantity); err != nil {
			return err
		}

		// 2. Persistir los campos nuevos del registro
		sale.ProductID = in.ProductID
		sale.QuantitySold = in.QuantitySold
		sale.SalePrice = in.SalePrice
		sale.SaleDate = date
		sale.UpdatedAt = time.Now()
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		// 3. Aplicar: re-verificar con la fila bloqueada (post-reversión, el
		// stock ya incluye las unidades devueltas si el producto no cambió)
		newLocked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if newLocked == nil {
			return domain.ErrNotFound
		}
		if newLocked.QuantityInStock < in.QuantitySold {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.QuantitySold,
				Available: newLocked.QuantityInStock,
			}
		}
		newStock = newLocked.QuantityInStock - in.QuantitySold
		return productRepo.UpdateStock(in.ProductID, newStock)
	})
	if err != nil {
		if _, ok := domain.IsInsufficientStock(err); ok {
			metrics.InsufficientStockTotal.Inc()
		}
		return nil, err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues("reverse_sale").Inc()
	metrics.StockAdjustmentsTotal.WithLabelValues("apply_sale").Inc()

	newProduct.QuantityInStock = newStock
	return uc.toResponse(sale, newProduct), nil
}

// Delete elimina una venta devolviendo sus unidades al stock en la misma
// transacción que borra el registro.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		locked, err := productRepo.GetForUpdate(sale.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(sale.ProductID, locked.QuantityInStock+sale.QuantitySold); err != nil {
			return err
		}
		return saleRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues("reverse_sale").Inc()
	return nil
}

// GetByID obtiene una venta con sus relaciones.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	product, _ := uc.productRepo.GetByID(sale.ProductID)
	return uc.toResponse(sale, product), nil
}

// List devuelve todas las ventas (orden: fecha descendente) con sus relaciones.
func (uc *SaleUseCase) List() ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List()
	if err != nil {
		return nil, err
	}
	products := map[string]*entity.Product{}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		product, ok := products[s.ProductID]
		if !ok {
			product, _ = uc.productRepo.GetByID(s.ProductID)
			products[s.ProductID] = product
		}
		out = append(out, *uc.toResponse(s, product))
	}
	return out, nil
}

func (uc *SaleUseCase) toResponse(s *entity.Sale, product *entity.Product) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		QuantitySold: s.QuantitySold,
		SalePrice:    s.SalePrice,
		SaleDate:     s.SaleDate.Format(dateLayout),
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if product != nil {
		resp.Product = &dto.ProductSummary{
			ID:              product.ID,
			Name:            product.Name,
			SKU:             product.SKU,
			QuantityInStock: product.QuantityInStock,
		}
	}
	if s.CreatedBy != "" && uc.userRepo != nil {
		if creator, _ := uc.userRepo.GetByID(s.CreatedBy); creator != nil {
			resp.Creator = &dto.UserSummary{ID: creator.ID, Name: creator.Name}
		}
	}
	return resp
}
