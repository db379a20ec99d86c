package sales

import (
	"context"

	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El débito de inventario y el alta del registro
// de venta deben ser visibles como una sola unidad atómica: o ambos quedan, o
// ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
