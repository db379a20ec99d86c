package dto

import "github.com/shopspring/decimal"

// ProfitSummaryRequest filtros para el resumen de ganancias (query params).
// Fechas en formato YYYY-MM-DD; vacías = todo el histórico.
type ProfitSummaryRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	TopN      int    `query:"top_n" validate:"omitempty,min=1,max=200"`
}

// ItemProfitDTO ganancia acumulada de un artículo.
type ItemProfitDTO struct {
	ItemName  string          `json:"item_name"`
	SaleCount int64           `json:"sale_count"`
	Profit    decimal.Decimal `json:"profit"`
}

// DailyProfitDTO ganancia acumulada de un día calendario.
type DailyProfitDTO struct {
	Day    string          `json:"day"` // YYYY-MM-DD
	Profit decimal.Decimal `json:"profit"`
}

// ProfitSummaryDTO resumen de ganancias del dueño en el período.
type ProfitSummaryDTO struct {
	SaleCount            int64           `json:"sale_count"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	AverageProfitPerSale decimal.Decimal `json:"average_profit_per_sale"`
	ByItem               []ItemProfitDTO `json:"by_item"`
	ByDay                []DailyProfitDTO `json:"by_day"`
}
