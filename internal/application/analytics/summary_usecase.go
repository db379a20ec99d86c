package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

const (
	defaultTopN = 20
	maxTopN     = 200
	dateLayout  = "2006-01-02"
)

// SummaryUseCase arma el resumen de ganancias de un dueño: totales, promedio
// por venta, ganancia por artículo (top N) y ganancia por día.
type SummaryUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(analyticsRepo repository.AnalyticsRepository) *SummaryUseCase {
	return &SummaryUseCase{analyticsRepo: analyticsRepo}
}

// GetProfitSummary genera el resumen para el período pedido. Fechas vacías
// cubren todo el histórico; la fecha final es inclusiva (se consulta hasta el
// día siguiente exclusivo).
func (uc *SummaryUseCase) GetProfitSummary(ctx context.Context, ownerID string, req dto.ProfitSummaryRequest) (*dto.ProfitSummaryDTO, error) {
	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	// Por artículo y por día son consultas independientes; se lanzan en
	// paralelo mientras los totales corren en el flujo principal.
	type itemResult struct {
		rows []repository.ItemProfitResult
		err  error
	}
	type dayResult struct {
		rows []repository.DailyProfitResult
		err  error
	}
	itemChan := make(chan itemResult, 1)
	dayChan := make(chan dayResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetProfitByItem(ctx, ownerID, startDate, endDate, topN)
		itemChan <- itemResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetProfitByDay(ctx, ownerID, startDate, endDate)
		dayChan <- dayResult{rows, err}
	}()

	totals, err := uc.analyticsRepo.GetProfitTotals(ctx, ownerID, startDate, endDate)
	itemRes := <-itemChan
	dayRes := <-dayChan
	if err != nil {
		return nil, err
	}
	if itemRes.err != nil {
		return nil, itemRes.err
	}
	if dayRes.err != nil {
		return nil, dayRes.err
	}

	avg := decimal.Zero
	if totals.SaleCount > 0 {
		avg = totals.TotalProfit.Div(decimal.NewFromInt(totals.SaleCount))
	}

	byItem := make([]dto.ItemProfitDTO, 0, len(itemRes.rows))
	for _, r := range itemRes.rows {
		byItem = append(byItem, dto.ItemProfitDTO{
			ItemName:  r.ItemName,
			SaleCount: r.SaleCount,
			Profit:    r.Profit,
		})
	}
	byDay := make([]dto.DailyProfitDTO, 0, len(dayRes.rows))
	for _, r := range dayRes.rows {
		byDay = append(byDay, dto.DailyProfitDTO{
			Day:    r.Day.Format(dateLayout),
			Profit: r.Profit,
		})
	}

	return &dto.ProfitSummaryDTO{
		SaleCount:            totals.SaleCount,
		TotalRevenue:         totals.TotalRevenue,
		TotalProfit:          totals.TotalProfit,
		AverageProfitPerSale: avg,
		ByItem:               byItem,
		ByDay:                byDay,
	}, nil
}

// parsePeriod interpreta las fechas YYYY-MM-DD del request. Vacías: desde el
// origen hasta mañana. La fecha final se convierte en límite exclusivo
// (inicio del día siguiente).
func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate := time.Time{}
	if start != "" {
		parsed, err := time.Parse(dateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		startDate = parsed
	}
	endDate := time.Now().AddDate(0, 0, 1)
	if end != "" {
		parsed, err := time.Parse(dateLayout, end)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		endDate = parsed.AddDate(0, 0, 1)
	}
	if !startDate.IsZero() && endDate.Before(startDate) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return startDate, endDate, nil
}
