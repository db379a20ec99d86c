package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario de un dueño (tenant).
// Quantity y Price se llevan en la unidad de stock; Price es el costo promedio
// ponderado recalculado en cada lote que se fusiona (ver valuation.MergeBatch).
// ConversionFactor indica cuántas unidades de venta hay en una unidad de stock
// y es siempre 1 cuando SellingUnit es igual a StockUnit (sin distinguir
// mayúsculas).
type Item struct {
	ID                  string
	OwnerID             string
	ItemName            string
	Quantity            decimal.Decimal // en unidades de stock, nunca negativo
	Price               decimal.Decimal // costo por unidad de stock (promedio ponderado)
	StockUnit           string
	SellingUnit         string
	ConversionFactor    decimal.Decimal // unidades de venta por unidad de stock, > 0
	DefaultSellingPrice decimal.Decimal // precio de venta sugerido por unidad de venta
	Supplier            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
