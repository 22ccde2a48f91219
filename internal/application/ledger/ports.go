// Package ledger mantiene quantity_in_stock consistente con el historial de
// compras y ventas confirmadas. Toda mutación de stock ocurre dentro de una
// transacción provista por TxRunner; una operación rechazada o fallida no
// deja ningún efecto parcial.
package ledger

import (
	"context"

	"github.com/invorya/inventra-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// si fn devuelve error, ningún write de la tx persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
