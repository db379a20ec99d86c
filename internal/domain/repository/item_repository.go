package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo son
// válidos dentro de una transacción (ver TxRunner).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByIDForUpdate(id string) (*entity.Item, error)
	// GetByOwnerAndKeyForUpdate busca por (owner, itemName, stockUnit) sin
	// distinguir mayúsculas; es la llave de fusión de lotes.
	GetByOwnerAndKeyForUpdate(ownerID, itemName, stockUnit string) (*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateQuantity actualiza solo la cantidad (débito por venta o restock).
	UpdateQuantity(id string, quantity decimal.Decimal, updatedAt time.Time) error
	// ListByOwner devuelve los artículos del dueño ordenados por updated_at DESC.
	ListByOwner(ownerID string) ([]*entity.Item, error)
	Delete(id string) error
}
