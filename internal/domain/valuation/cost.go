package valuation

import "github.com/shopspring/decimal"

// MergeBatch implementa la lógica de costo promedio ponderado al fusionar un
// lote nuevo con el stock existente (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantLote * CostoLote)) / (StockActual + CantLote)
// Si la cantidad total resultante no es positiva se devuelve el costo del lote
// (caso degenerado, evita división por cero). La precondición CantLote > 0 la
// valida el caso de uso antes de llamar.
func MergeBatch(existingQty, existingPrice, addedQty, addedPrice decimal.Decimal) (newQty, newPrice decimal.Decimal) {
	newQty = existingQty.Add(addedQty)
	if newQty.LessThanOrEqual(decimal.Zero) {
		return newQty, addedPrice
	}
	total := existingQty.Mul(existingPrice).Add(addedQty.Mul(addedPrice))
	return newQty, total.Div(newQty)
}
