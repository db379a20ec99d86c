package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProfitTotalsResult resultado crudo de los agregados globales de ganancia.
// Lo produce la DB; el use case lo convierte en DTO.
type ProfitTotalsResult struct {
	SaleCount    int64
	TotalProfit  decimal.Decimal
	TotalRevenue decimal.Decimal // SUM(selling_price * quantity_sold)
}

// ItemProfitResult ganancia acumulada por artículo (agrupado por item_name
// desnormalizado, así las ventas de artículos ya borrados siguen contando).
type ItemProfitResult struct {
	ItemName  string
	SaleCount int64
	Profit    decimal.Decimal
}

// DailyProfitResult ganancia acumulada por día calendario.
type DailyProfitResult struct {
	Day    time.Time
	Profit decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica de
// ganancias. Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetProfitTotals devuelve conteo, ganancia e ingresos totales del dueño
	// en el período dado. Usa COALESCE para devolver cero si no hay ventas.
	GetProfitTotals(ctx context.Context, ownerID string, startDate, endDate time.Time) (ProfitTotalsResult, error)

	// GetProfitByItem devuelve los artículos ordenados por ganancia
	// descendente. limit controla cuántos devolver como máximo.
	GetProfitByItem(ctx context.Context, ownerID string, startDate, endDate time.Time, limit int) ([]ItemProfitResult, error)

	// GetProfitByDay devuelve la ganancia agrupada por día, ascendente.
	GetProfitByDay(ctx context.Context, ownerID string, startDate, endDate time.Time) ([]DailyProfitResult, error)
}
