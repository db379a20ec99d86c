package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el registro histórico de una venta. ItemName y UnitSold son una
// copia desnormalizada del artículo al momento de vender: ediciones o borrado
// posterior del artículo no alteran la venta.
type Sale struct {
	ID                    string
	OwnerID               string
	ItemID                string // puede apuntar a un artículo ya borrado
	ItemName              string
	QuantitySold          decimal.Decimal // en unidades de venta, > 0
	SellingPrice          decimal.Decimal // por unidad de venta
	CostPriceAtTimeOfSale decimal.Decimal // por unidad de venta, snapshot al vender
	Profit                decimal.Decimal // (SellingPrice - CostPriceAtTimeOfSale) * QuantitySold
	UnitSold              string
	SaleDate              time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
