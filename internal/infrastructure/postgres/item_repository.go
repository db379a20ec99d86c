package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, owner_id, item_name, quantity, price, stock_unit, selling_unit,
		conversion_factor, default_selling_price, supplier, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable
// con pool o tx). La unicidad por dueño de (item_name, stock_unit) sin
// distinguir mayúsculas la garantiza el índice único
// items_owner_name_unit_key sobre (owner_id, lower(item_name), lower(stock_unit)).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos.
// Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo. Devuelve ErrDuplicate si otro artículo
// del dueño ya ocupa la llave (item_name, stock_unit).
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_id, item_name, quantity, price, stock_unit, selling_unit,
			conversion_factor, default_selling_price, supplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OwnerID, item.ItemName, item.Quantity, item.Price,
		item.StockUnit, item.SellingUnit, item.ConversionFactor,
		item.DefaultSellingPrice, item.Supplier, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene un artículo por ID bloqueando la fila
// (SELECT FOR UPDATE). Solo válido dentro de una transacción.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByOwnerAndKeyForUpdate busca por (owner, item_name, stock_unit) sin
// distinguir mayúsculas y bloquea la fila. Es la lectura previa a la fusión de
// lotes: el bloqueo asegura que el promedio ponderado parte de un estado
// consistente.
func (r *ItemRepo) GetByOwnerAndKeyForUpdate(ownerID, itemName, stockUnit string) (*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1 AND lower(item_name) = lower($2) AND lower(stock_unit) = lower($3)
		FOR UPDATE`
	return r.getOne(query, ownerID, itemName, stockUnit)
}

// Update actualiza todos los campos mutables del artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET item_name = $2, quantity = $3, price = $4, stock_unit = $5,
			selling_unit = $6, conversion_factor = $7, default_selling_price = $8,
			supplier = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Quantity, item.Price, item.StockUnit,
		item.SellingUnit, item.ConversionFactor, item.DefaultSellingPrice,
		item.Supplier, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (débito por venta o restock).
func (r *ItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// ListByOwner lista los artículos del dueño, más reciente primero.
func (r *ItemRepo) ListByOwner(ownerID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina un artículo por ID. Las ventas históricas no se tocan.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) getOne(query string, args ...any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.OwnerID, &it.ItemName, &it.Quantity, &it.Price,
		&it.StockUnit, &it.SellingUnit, &it.ConversionFactor,
		&it.DefaultSellingPrice, &it.Supplier, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
