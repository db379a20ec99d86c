package repository

import "github.com/jhoicas/tradetrack-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// ListByOwner devuelve las ventas del dueño ordenadas por sale_date DESC.
	ListByOwner(ownerID string) ([]*entity.Sale, error)
	Delete(id string) error
}
