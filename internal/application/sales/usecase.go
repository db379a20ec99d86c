package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
	"github.com/jhoicas/tradetrack-api/internal/domain/valuation"
)

// DeletePolicy gobierna qué pasa con el inventario al borrar una venta.
type DeletePolicy string

const (
	// DeleteHistoricalOnly borra solo el registro histórico; el inventario no
	// se restituye. Es la política por defecto del producto: borrar una venta
	// corrige el histórico, no revierte el movimiento de stock.
	DeleteHistoricalOnly DeletePolicy = "historical_only"
	// DeleteRestockInventory además re-acredita al artículo las unidades de
	// stock equivalentes (con el factor de conversión vigente del artículo).
	DeleteRestockInventory DeletePolicy = "restock_inventory"
)

// Tolerancia para la comparación de suficiencia de stock: absorbe la deriva
// de redondeo acumulada por ventas fraccionarias previas.
var stockTolerance = decimal.NewFromFloat(0.00001)

// SaleUseCase procesa ventas: valida, calcula costo y ganancia del lado del
// servidor, debita stock y persiste el registro de venta en una sola
// transacción. También gobierna el borrado de ventas según DeletePolicy.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	itemRepo     repository.ItemRepository
	deletePolicy DeletePolicy
}

// NewSaleUseCase construye el caso de uso. Una política vacía cae a
// DeleteHistoricalOnly.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, itemRepo repository.ItemRepository, policy DeletePolicy) *SaleUseCase {
	if policy != DeleteRestockInventory {
		policy = DeleteHistoricalOnly
	}
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, itemRepo: itemRepo, deletePolicy: policy}
}

// RecordSale registra una venta contra un artículo del dueño.
//
// Dentro de una transacción: bloquea la fila del artículo (SELECT FOR UPDATE),
// convierte la cantidad vendida a unidades de stock, verifica suficiencia con
// tolerancia, toma el snapshot de costo por unidad de venta, calcula la
// ganancia, debita el stock (con clamp a cero por redondeo) y persiste la
// venta desnormalizada. El bloqueo de fila impide que una segunda venta
// concurrente lea la cantidad previa al débito.
//
// Costo y ganancia se calculan siempre del lado del servidor; los valores que
// pudiera enviar el cliente se descartan.
func (uc *SaleUseCase) RecordSale(ctx context.Context, ownerID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.QuantitySold.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, saleRepo repository.SaleRepository) error {
		item, err := itemRepo.GetByIDForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.OwnerID != ownerID {
			return domain.ErrForbidden
		}

		required, err := valuation.ToStockUnits(in.QuantitySold, item.ConversionFactor)
		if err != nil {
			return err
		}
		if item.Quantity.LessThan(required.Sub(stockTolerance)) {
			return &domain.InsufficientStockError{
				ItemName:  item.ItemName,
				Available: item.Quantity,
				Required:  required,
			}
		}

		costPerSellingUnit, err := valuation.CostPerSellingUnit(item.Price, item.ConversionFactor)
		if err != nil {
			return err
		}
		profit := in.SellingPrice.Sub(costPerSellingUnit).Mul(in.QuantitySold)

		newQty := item.Quantity.Sub(required)
		if newQty.IsNegative() {
			// La tolerancia puede dejar un residuo negativo minúsculo.
			newQty = decimal.Zero
		}
		now := time.Now()
		if err := itemRepo.UpdateQuantity(item.ID, newQty, now); err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:                    uuid.New().String(),
			OwnerID:               ownerID,
			ItemID:                item.ID,
			ItemName:              item.ItemName,
			QuantitySold:          in.QuantitySold,
			SellingPrice:          in.SellingPrice,
			CostPriceAtTimeOfSale: costPerSellingUnit,
			Profit:                profit,
			UnitSold:              item.SellingUnit,
			SaleDate:              now,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(out), nil
}

// DeleteSale borra un registro de venta del dueño. Con la política por
// defecto el inventario no se restituye (decisión de producto documentada);
// con DeleteRestockInventory se re-acreditan las unidades dentro de la misma
// transacción, usando el factor de conversión vigente del artículo.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, ownerID, saleID string) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, saleRepo repository.SaleRepository) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.OwnerID != ownerID {
			return domain.ErrForbidden
		}

		if uc.deletePolicy == DeleteRestockInventory {
			// El artículo puede haber sido borrado después de la venta; en ese
			// caso no hay nada que restituir.
			item, err := itemRepo.GetByIDForUpdate(sale.ItemID)
			if err != nil {
				return err
			}
			if item != nil && item.OwnerID == ownerID {
				restock, err := valuation.ToStockUnits(sale.QuantitySold, item.ConversionFactor)
				if err != nil {
					return err
				}
				if err := itemRepo.UpdateQuantity(item.ID, item.Quantity.Add(restock), time.Now()); err != nil {
					return err
				}
			}
		}
		return saleRepo.Delete(saleID)
	})
}

// Get obtiene una venta del dueño.
func (uc *SaleUseCase) Get(ownerID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// List lista las ventas del dueño, más reciente primero.
func (uc *SaleUseCase) List(ownerID string) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:                    s.ID,
		OwnerID:               s.OwnerID,
		ItemID:                s.ItemID,
		ItemName:              s.ItemName,
		QuantitySold:          s.QuantitySold,
		SellingPrice:          s.SellingPrice,
		CostPriceAtTimeOfSale: s.CostPriceAtTimeOfSale,
		Profit:                s.Profit,
		UnitSold:              s.UnitSold,
		SaleDate:              s.SaleDate,
		CreatedAt:             s.CreatedAt,
	}
}
