package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, owner_id, item_id, item_name, quantity_sold, selling_price,
		cost_price_at_time_of_sale, profit, unit_sold, sale_date, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable
// con pool o tx). item_id no lleva foreign key: la venta sobrevive al borrado
// del artículo gracias al snapshot desnormalizado.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
// Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste un registro de venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, owner_id, item_id, item_name, quantity_sold, selling_price,
			cost_price_at_time_of_sale, profit, unit_sold, sale_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OwnerID, sale.ItemID, sale.ItemName, sale.QuantitySold,
		sale.SellingPrice, sale.CostPriceAtTimeOfSale, sale.Profit,
		sale.UnitSold, sale.SaleDate, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.OwnerID, &s.ItemID, &s.ItemName, &s.QuantitySold,
		&s.SellingPrice, &s.CostPriceAtTimeOfSale, &s.Profit,
		&s.UnitSold, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListByOwner lista las ventas del dueño, más reciente primero.
func (r *SaleRepo) ListByOwner(ownerID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE owner_id = $1 ORDER BY sale_date DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.ItemID, &s.ItemName, &s.QuantitySold,
			&s.SellingPrice, &s.CostPriceAtTimeOfSale, &s.Profit,
			&s.UnitSold, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}
