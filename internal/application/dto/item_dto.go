package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest entrada para agregar un lote de stock. Si ya existe un
// artículo del dueño con el mismo (item_name, stock_unit) sin distinguir
// mayúsculas, el lote se fusiona (cantidad suma, costo se repondera); si no,
// se crea el artículo.
type AddStockRequest struct {
	ItemName            string           `json:"item_name" validate:"required,min=1,max=200"`
	Quantity            decimal.Decimal  `json:"quantity"`
	Price               decimal.Decimal  `json:"price"` // costo por unidad de stock
	StockUnit           string           `json:"stock_unit" validate:"required,min=1,max=50"`
	SellingUnit         *string          `json:"selling_unit" validate:"omitempty,max=50"`
	ConversionFactor    *decimal.Decimal `json:"conversion_factor"`
	DefaultSellingPrice *decimal.Decimal `json:"default_selling_price"`
	Supplier            *string          `json:"supplier" validate:"omitempty,max=200"`
}

// UpdateItemRequest parche parcial de un artículo. Quantity no se acepta por
// esta vía: la cantidad solo cambia al agregar lotes o al vender.
type UpdateItemRequest struct {
	ItemName            *string          `json:"item_name" validate:"omitempty,max=200"`
	Price               *decimal.Decimal `json:"price"`
	StockUnit           *string          `json:"stock_unit" validate:"omitempty,max=50"`
	SellingUnit         *string          `json:"selling_unit" validate:"omitempty,max=50"`
	ConversionFactor    *decimal.Decimal `json:"conversion_factor"`
	DefaultSellingPrice *decimal.Decimal `json:"default_selling_price"`
	Supplier            *string          `json:"supplier" validate:"omitempty,max=200"`
}

// ItemResponse salida de un artículo de inventario.
type ItemResponse struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"owner_id"`
	ItemName            string          `json:"item_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	StockUnit           string          `json:"stock_unit"`
	SellingUnit         string          `json:"selling_unit"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	DefaultSellingPrice decimal.Decimal `json:"default_selling_price"`
	Supplier            string          `json:"supplier,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ItemListResponse lista de artículos (ordenada por updated_at DESC).
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

// UpdateItemResponse resultado de un parche: Changed=false cuando el parche
// calculado quedó vacío (no se tocó updated_at).
type UpdateItemResponse struct {
	Changed bool         `json:"changed"`
	Message string       `json:"message"`
	Item    ItemResponse `json:"item"`
}
