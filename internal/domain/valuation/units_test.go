package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradetrack-api/internal/domain/valuation"
)

// Un bulto con factor 10 equivale a 10 unidades de venta.
func TestToSellingUnits(t *testing.T) {
	out, err := valuation.ToSellingUnits(decimal.NewFromInt(2), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(out))
}

// 20 unidades de venta con factor 10 son 2 unidades de stock.
func TestToStockUnits(t *testing.T) {
	out, err := valuation.ToStockUnits(decimal.NewFromInt(20), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(out))
}

// Costo 100 por unidad de stock con factor 10 → 10 por unidad de venta.
func TestCostPerSellingUnit(t *testing.T) {
	out, err := valuation.CostPerSellingUnit(decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(out))
}

// Factor <= 0 es error de configuración en las tres conversiones.
func TestConversiones_FactorNoPositivoFalla(t *testing.T) {
	factores := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)}
	for _, f := range factores {
		_, err := valuation.ToSellingUnits(decimal.NewFromInt(1), f)
		assert.ErrorIs(t, err, valuation.ErrNonPositiveFactor)

		_, err = valuation.ToStockUnits(decimal.NewFromInt(1), f)
		assert.ErrorIs(t, err, valuation.ErrNonPositiveFactor)

		_, err = valuation.CostPerSellingUnit(decimal.NewFromInt(1), f)
		assert.ErrorIs(t, err, valuation.ErrNonPositiveFactor)
	}
}

// Ida y vuelta: convertir a unidades de venta y de regreso conserva la cantidad.
func TestConversiones_IdaYVuelta(t *testing.T) {
	factor := decimal.NewFromFloat(2.5)
	stockQty := decimal.NewFromFloat(3.2)

	selling, err := valuation.ToSellingUnits(stockQty, factor)
	require.NoError(t, err)
	back, err := valuation.ToStockUnits(selling, factor)
	require.NoError(t, err)

	assert.True(t, stockQty.Equal(back), "esperado %s, obtenido %s", stockQty, back)
}
