package inventory

import (
	"context"

	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la búsqueda con bloqueo de fila
// y la fusión/creación del artículo se vean como un solo paso serializable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
