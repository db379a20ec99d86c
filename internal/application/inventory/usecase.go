package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/domain/collation"
	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
	"github.com/jhoicas/tradetrack-api/internal/domain/valuation"
)

var one = decimal.NewFromInt(1)

// ItemUseCase gobierna el ciclo de vida de los artículos de inventario:
// alta/fusión de lotes con costo promedio ponderado, parches de campos,
// borrado y lecturas. Toda operación está acotada al dueño autenticado.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// effectiveUnits deriva la unidad de venta y el factor efectivos: la unidad de
// venta vacía cae a la unidad de stock, un factor no positivo se normaliza a 1
// y el factor queda clavado en 1 siempre que ambas unidades sean iguales sin
// distinguir mayúsculas.
func effectiveUnits(stockUnit string, sellingUnit *string, factor *decimal.Decimal) (string, decimal.Decimal) {
	finalUnit := stockUnit
	if sellingUnit != nil && strings.TrimSpace(*sellingUnit) != "" {
		finalUnit = strings.TrimSpace(*sellingUnit)
	}
	finalFactor := one
	if factor != nil && factor.GreaterThan(decimal.Zero) {
		finalFactor = *factor
	}
	if collation.Equal(finalUnit, stockUnit) {
		finalFactor = one
	}
	return finalUnit, finalFactor
}

// AddOrMergeStock agrega un lote: si ya existe un artículo del dueño con la
// misma llave (item_name, stock_unit) sin distinguir mayúsculas, fusiona
// (cantidad suma, costo se repondera y los campos descriptivos los gana la
// última escritura); si no, crea el artículo. Devuelve created=true cuando se
// creó un registro nuevo. La búsqueda y la escritura corren dentro de una
// transacción con bloqueo de fila para que dos lotes concurrentes no partan
// del mismo estado previo.
func (uc *ItemUseCase) AddOrMergeStock(ctx context.Context, ownerID string, in dto.AddStockRequest) (*dto.ItemResponse, bool, error) {
	name := strings.TrimSpace(in.ItemName)
	stockUnit := strings.TrimSpace(in.StockUnit)
	if name == "" || stockUnit == "" {
		return nil, false, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.Price.IsNegative() {
		return nil, false, domain.ErrInvalidInput
	}
	if in.DefaultSellingPrice != nil && in.DefaultSellingPrice.IsNegative() {
		return nil, false, domain.ErrInvalidInput
	}
	sellingUnit, factor := effectiveUnits(stockUnit, in.SellingUnit, in.ConversionFactor)

	var (
		out     *entity.Item
		created bool
	)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.SaleRepository) error {
		existing, err := itemRepo.GetByOwnerAndKeyForUpdate(ownerID, name, stockUnit)
		if err != nil {
			return err
		}
		now := time.Now()

		if existing != nil {
			// Fusionar un lote sin cantidad no aporta nada; se rechaza.
			if !in.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			existing.Quantity, existing.Price = valuation.MergeBatch(
				existing.Quantity, existing.Price, in.Quantity, in.Price,
			)
			// Última escritura gana en los campos descriptivos.
			existing.StockUnit = stockUnit
			existing.SellingUnit = sellingUnit
			existing.ConversionFactor = factor
			if in.DefaultSellingPrice != nil {
				existing.DefaultSellingPrice = *in.DefaultSellingPrice
			}
			if in.Supplier != nil && strings.TrimSpace(*in.Supplier) != "" {
				existing.Supplier = strings.TrimSpace(*in.Supplier)
			}
			existing.UpdatedAt = now
			if err := itemRepo.Update(existing); err != nil {
				return err
			}
			out = existing
			return nil
		}

		item := &entity.Item{
			ID:               uuid.New().String(),
			OwnerID:          ownerID,
			ItemName:         name,
			Quantity:         in.Quantity,
			Price:            in.Price,
			StockUnit:        stockUnit,
			SellingUnit:      sellingUnit,
			ConversionFactor: factor,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if in.DefaultSellingPrice != nil {
			item.DefaultSellingPrice = *in.DefaultSellingPrice
		} else {
			item.DefaultSellingPrice = decimal.Zero
		}
		if in.Supplier != nil {
			item.Supplier = strings.TrimSpace(*in.Supplier)
		}
		if err := itemRepo.Create(item); err != nil {
			// El índice único (owner, lower(name), lower(unit)) atrapa la
			// carrera crear-vs-crear; el caller debe reintentar la operación.
			if err == domain.ErrDuplicate {
				return domain.ErrConflict
			}
			return err
		}
		out = item
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return toItemResponse(out), created, nil
}

// UpdateFields aplica un parche parcial al artículo. La cantidad nunca se
// acepta por esta vía. Re-deriva la consistencia unidad de venta / factor con
// las mismas reglas del alta. Devuelve changed=false (y no toca updated_at)
// cuando el parche calculado quedó vacío.
func (uc *ItemUseCase) UpdateFields(ctx context.Context, ownerID, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, bool, error) {
	if in.ItemName != nil && strings.TrimSpace(*in.ItemName) == "" {
		return nil, false, domain.ErrInvalidInput
	}
	if in.StockUnit != nil && strings.TrimSpace(*in.StockUnit) == "" {
		return nil, false, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, false, domain.ErrInvalidInput
	}
	// A diferencia del alta (que normaliza a 1), el parche rechaza factores no
	// positivos: aquí el caller está fijando el valor de forma explícita.
	if in.ConversionFactor != nil && !in.ConversionFactor.GreaterThan(decimal.Zero) {
		return nil, false, domain.ErrInvalidInput
	}
	if in.DefaultSellingPrice != nil && in.DefaultSellingPrice.IsNegative() {
		return nil, false, domain.ErrInvalidInput
	}

	var (
		out     *entity.Item
		changed bool
	)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.SaleRepository) error {
		item, err := itemRepo.GetByIDForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.OwnerID != ownerID {
			return domain.ErrForbidden
		}

		if in.ItemName != nil && strings.TrimSpace(*in.ItemName) != item.ItemName {
			item.ItemName = strings.TrimSpace(*in.ItemName)
			changed = true
		}
		if in.Price != nil && !in.Price.Equal(item.Price) {
			item.Price = *in.Price
			changed = true
		}
		effectiveStockUnit := item.StockUnit
		if in.StockUnit != nil && strings.TrimSpace(*in.StockUnit) != item.StockUnit {
			effectiveStockUnit = strings.TrimSpace(*in.StockUnit)
			item.StockUnit = effectiveStockUnit
			changed = true
		}

		finalSellingUnit := item.SellingUnit
		if in.SellingUnit != nil {
			finalSellingUnit = strings.TrimSpace(*in.SellingUnit)
			if finalSellingUnit == "" {
				finalSellingUnit = effectiveStockUnit
			}
		}
		finalFactor := item.ConversionFactor
		if in.ConversionFactor != nil {
			finalFactor = *in.ConversionFactor
		}
		if collation.Equal(finalSellingUnit, effectiveStockUnit) {
			finalFactor = one
		}
		if finalSellingUnit != item.SellingUnit {
			item.SellingUnit = finalSellingUnit
			changed = true
		}
		if !finalFactor.Equal(item.ConversionFactor) {
			item.ConversionFactor = finalFactor
			changed = true
		}

		if in.DefaultSellingPrice != nil && !in.DefaultSellingPrice.Equal(item.DefaultSellingPrice) {
			item.DefaultSellingPrice = *in.DefaultSellingPrice
			changed = true
		}
		if in.Supplier != nil && strings.TrimSpace(*in.Supplier) != item.Supplier {
			item.Supplier = strings.TrimSpace(*in.Supplier)
			changed = true
		}

		if !changed {
			out = item
			return nil
		}
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return toItemResponse(out), changed, nil
}

// Delete elimina el artículo del dueño. No hay verificación referencial
// contra ventas: las ventas guardan su propio snapshot del nombre y la unidad.
func (uc *ItemUseCase) Delete(ownerID, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return uc.itemRepo.Delete(itemID)
}

// Get obtiene un artículo del dueño.
func (uc *ItemUseCase) Get(ownerID, itemID string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return toItemResponse(item), nil
}

// List lista los artículos del dueño, más reciente primero.
func (uc *ItemUseCase) List(ownerID string) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                  it.ID,
		OwnerID:             it.OwnerID,
		ItemName:            it.ItemName,
		Quantity:            it.Quantity,
		Price:               it.Price,
		StockUnit:           it.StockUnit,
		SellingUnit:         it.SellingUnit,
		ConversionFactor:    it.ConversionFactor,
		DefaultSellingPrice: it.DefaultSellingPrice,
		Supplier:            it.Supplier,
		CreatedAt:           it.CreatedAt,
		UpdatedAt:           it.UpdatedAt,
	}
}
