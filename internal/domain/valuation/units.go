package valuation

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveFactor indica un factor de conversión <= 0. El invariante del
// Item garantiza factor > 0, así que llegar aquí es un error de configuración
// y se falla de inmediato en lugar de dividir por cero.
var ErrNonPositiveFactor = errors.New("factor de conversión no positivo")

// ToSellingUnits convierte una cantidad en unidades de stock a unidades de
// venta: stockQty * factor.
func ToSellingUnits(stockQty, factor decimal.Decimal) (decimal.Decimal, error) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNonPositiveFactor
	}
	return stockQty.Mul(factor), nil
}

// ToStockUnits convierte una cantidad en unidades de venta a unidades de
// stock: sellingQty / factor.
func ToStockUnits(sellingQty, factor decimal.Decimal) (decimal.Decimal, error) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNonPositiveFactor
	}
	return sellingQty.Div(factor), nil
}

// CostPerSellingUnit convierte el costo por unidad de stock a costo por unidad
// de venta: costPerStockUnit / factor.
func CostPerSellingUnit(costPerStockUnit, factor decimal.Decimal) (decimal.Decimal, error) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNonPositiveFactor
	}
	return costPerStockUnit.Div(factor), nil
}
