package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre la tabla sales para el
// resumen de ganancias. Agrupa por el item_name desnormalizado, así las
// ventas de artículos ya borrados siguen contando.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetProfitTotals devuelve conteo, ganancia e ingresos totales del dueño en
// el período [startDate, endDate). COALESCE devuelve cero si no hay ventas.
func (r *AnalyticsRepo) GetProfitTotals(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
) (repository.ProfitTotalsResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                      AS sale_count,
	    COALESCE(SUM(profit), 0)                      AS total_profit,
	    COALESCE(SUM(selling_price * quantity_sold), 0) AS total_revenue
	FROM sales
	WHERE owner_id = $1
	  AND sale_date >= $2 AND sale_date < $3`

	var out repository.ProfitTotalsResult
	err := r.pool.QueryRow(ctx, query, ownerID, startDate, endDate).Scan(
		&out.SaleCount, &out.TotalProfit, &out.TotalRevenue,
	)
	if err != nil {
		return repository.ProfitTotalsResult{}, fmt.Errorf("profit totals: %w", err)
	}
	return out, nil
}

// GetProfitByItem devuelve los artículos ordenados por ganancia descendente.
func (r *AnalyticsRepo) GetProfitByItem(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.ItemProfitResult, error) {
	const query = `
	SELECT
	    item_name,
	    COUNT(*)                 AS sale_count,
	    COALESCE(SUM(profit), 0) AS profit
	FROM sales
	WHERE owner_id = $1
	  AND sale_date >= $2 AND sale_date < $3
	GROUP BY item_name
	ORDER BY profit DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, ownerID, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("profit by item: %w", err)
	}
	defer rows.Close()

	var list []repository.ItemProfitResult
	for rows.Next() {
		var row repository.ItemProfitResult
		if err := rows.Scan(&row.ItemName, &row.SaleCount, &row.Profit); err != nil {
			return nil, fmt.Errorf("scan profit by item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetProfitByDay devuelve la ganancia agrupada por día calendario, ascendente.
func (r *AnalyticsRepo) GetProfitByDay(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
) ([]repository.DailyProfitResult, error) {
	const query = `
	SELECT
	    date_trunc('day', sale_date) AS day,
	    COALESCE(SUM(profit), 0)     AS profit
	FROM sales
	WHERE owner_id = $1
	  AND sale_date >= $2 AND sale_date < $3
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, ownerID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("profit by day: %w", err)
	}
	defer rows.Close()

	var list []repository.DailyProfitResult
	for rows.Next() {
		var row repository.DailyProfitResult
		if err := rows.Scan(&row.Day, &row.Profit); err != nil {
			return nil, fmt.Errorf("scan profit by day: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
