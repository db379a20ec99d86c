package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta. QuantitySold va en
// unidades de venta y SellingPrice por unidad de venta.
// Los campos Profit y CostPriceAtTimeOfSale que envían clientes antiguos se
// aceptan pero se ignoran: el servidor los recalcula dentro de la transacción
// (cifras financieras enviadas por el cliente no son confiables).
type RecordSaleRequest struct {
	ItemID                string           `json:"item_id" validate:"required"`
	QuantitySold          decimal.Decimal  `json:"quantity_sold"`
	SellingPrice          decimal.Decimal  `json:"selling_price"`
	Profit                *decimal.Decimal `json:"profit"`
	CostPriceAtTimeOfSale *decimal.Decimal `json:"cost_price_at_time_of_sale"`
}

// SaleResponse salida de un registro de venta.
type SaleResponse struct {
	ID                    string          `json:"id"`
	OwnerID               string          `json:"owner_id"`
	ItemID                string          `json:"item_id"`
	ItemName              string          `json:"item_name"`
	QuantitySold          decimal.Decimal `json:"quantity_sold"`
	SellingPrice          decimal.Decimal `json:"selling_price"`
	CostPriceAtTimeOfSale decimal.Decimal `json:"cost_price_at_time_of_sale"`
	Profit                decimal.Decimal `json:"profit"`
	UnitSold              string          `json:"unit_sold"`
	SaleDate              time.Time       `json:"sale_date"`
	CreatedAt             time.Time       `json:"created_at"`
}

// SaleListResponse lista de ventas (ordenada por sale_date DESC).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
