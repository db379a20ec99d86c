package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tradetrack-api/internal/domain/valuation"
)

// ──────────────────────────────────────────────────────────────────────────────
// MergeBatch — costo promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: 10 unidades a 100 + lote de 5 a 130 → 15 unidades a 110.
func TestMergeBatch_PromedioPonderado(t *testing.T) {
	qty, price := valuation.MergeBatch(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(5), decimal.NewFromInt(130),
	)

	assert.True(t, decimal.NewFromInt(15).Equal(qty), "cantidad: esperado 15, obtenido %s", qty)
	assert.True(t, decimal.NewFromInt(110).Equal(price),
		"precio: (10*100 + 5*130)/15 = 110, obtenido %s", price)
}

// Fusionar sobre stock en cero debe quedarse con el costo del lote entrante.
func TestMergeBatch_StockCeroAdoptaCostoDelLote(t *testing.T) {
	qty, price := valuation.MergeBatch(
		decimal.Zero, decimal.NewFromInt(80),
		decimal.NewFromInt(4), decimal.NewFromInt(95),
	)

	assert.True(t, decimal.NewFromInt(4).Equal(qty))
	assert.True(t, decimal.NewFromInt(95).Equal(price),
		"con stock previo en cero el promedio es el costo del lote")
}

// Caso degenerado: cantidad total no positiva → se devuelve el costo del lote
// sin dividir por cero.
func TestMergeBatch_CantidadTotalCeroNoDividePorCero(t *testing.T) {
	qty, price := valuation.MergeBatch(
		decimal.Zero, decimal.NewFromInt(100),
		decimal.Zero, decimal.NewFromInt(130),
	)

	assert.True(t, qty.IsZero())
	assert.True(t, decimal.NewFromInt(130).Equal(price))
}

// El promedio es determinista: mismos insumos, mismo resultado.
func TestMergeBatch_Determinista(t *testing.T) {
	q1, p1 := valuation.MergeBatch(
		decimal.NewFromFloat(2.5), decimal.NewFromFloat(33.33),
		decimal.NewFromFloat(7.5), decimal.NewFromFloat(41.2),
	)
	q2, p2 := valuation.MergeBatch(
		decimal.NewFromFloat(2.5), decimal.NewFromFloat(33.33),
		decimal.NewFromFloat(7.5), decimal.NewFromFloat(41.2),
	)

	assert.True(t, q1.Equal(q2))
	assert.True(t, p1.Equal(p2))
}

// Lotes fraccionarios: 10 a 100 + 0.5 a 200 → 10.5 unidades, promedio exacto.
func TestMergeBatch_CantidadesFraccionarias(t *testing.T) {
	qty, price := valuation.MergeBatch(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromFloat(0.5), decimal.NewFromInt(200),
	)

	assert.True(t, decimal.NewFromFloat(10.5).Equal(qty))
	expected := decimal.NewFromInt(1100).Div(decimal.NewFromFloat(10.5))
	assert.True(t, expected.Equal(price), "esperado %s, obtenido %s", expected, price)
}
