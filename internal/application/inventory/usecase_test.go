package inventory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/application/inventory"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/domain/entity"
	"github.com/jhoicas/tradetrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	for _, it := range r.items {
		if it.OwnerID == item.OwnerID &&
			strings.EqualFold(it.ItemName, item.ItemName) &&
			strings.EqualFold(it.StockUnit, item.StockUnit) {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) GetByOwnerAndKeyForUpdate(ownerID, itemName, stockUnit string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.OwnerID == ownerID &&
			strings.EqualFold(it.ItemName, itemName) &&
			strings.EqualFold(it.StockUnit, stockUnit) {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, updatedAt time.Time) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	return nil
}

func (r *fakeItemRepo) ListByOwner(ownerID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) ListByOwner(ownerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.sales, id)
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes: en los tests
// no hay transacción real que abrir.
type fakeTxRunner struct {
	itemRepo repository.ItemRepository
	saleRepo repository.SaleRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.SaleRepository) error) error {
	return fn(r.itemRepo, r.saleRepo)
}

const (
	owner      = "owner-1"
	otherOwner = "owner-2"
)

func newItemUseCase() (*inventory.ItemUseCase, *fakeItemRepo) {
	itemRepo := newFakeItemRepo()
	tx := &fakeTxRunner{itemRepo: itemRepo, saleRepo: newFakeSaleRepo()}
	return inventory.NewItemUseCase(tx, itemRepo), itemRepo
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AddOrMergeStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddOrMergeStock_CreaArticuloNuevo(t *testing.T) {
	uc, _ := newItemUseCase()

	item, created, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName:  "Arroz",
		Quantity:  dec("50"),
		Price:     dec("1.20"),
		StockUnit: "kg",
	})
	require.NoError(t, err)

	assert.True(t, created, "el primer lote debe crear el artículo")
	assert.Equal(t, "Arroz", item.ItemName)
	assert.True(t, item.Quantity.Equal(dec("50")))
	assert.True(t, item.Price.Equal(dec("1.20")))
	// Sin unidad de venta explícita: cae a la unidad de stock con factor 1.
	assert.Equal(t, "kg", item.SellingUnit)
	assert.True(t, item.ConversionFactor.Equal(dec("1")))
}

func TestAddOrMergeStock_FusionaConCostoPromedioPonderado(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()

	// 10 unidades a 100
	_, created, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Aceite", Quantity: dec("10"), Price: dec("100"), StockUnit: "litro",
	})
	require.NoError(t, err)
	require.True(t, created)

	// + 5 unidades a 130 → 15 unidades a 110
	item, created, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Aceite", Quantity: dec("5"), Price: dec("130"), StockUnit: "litro",
	})
	require.NoError(t, err)

	assert.False(t, created, "el segundo lote debe fusionarse, no crear")
	assert.True(t, item.Quantity.Equal(dec("15")), "cantidad = 10 + 5")
	assert.True(t, item.Price.Equal(dec("110")),
		"costo promedio = (10*100 + 5*130) / 15 = 110, fue %s", item.Price)
}

func TestAddOrMergeStock_LlaveSinDistinguirMayusculas(t *testing.T) {
	uc, repo := newItemUseCase()
	ctx := context.Background()

	_, _, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Coca Cola", Quantity: dec("10"), Price: dec("2"), StockUnit: "unidad",
	})
	require.NoError(t, err)

	item, created, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "coca cola", Quantity: dec("5"), Price: dec("2"), StockUnit: "UNIDAD",
	})
	require.NoError(t, err)

	assert.False(t, created, "misma llave con otras mayúsculas debe fusionar")
	assert.True(t, item.Quantity.Equal(dec("15")))
	assert.Len(t, repo.items, 1, "no debe quedar un artículo duplicado")
}

func TestAddOrMergeStock_MismoNombreDistintoDuenoNoFusiona(t *testing.T) {
	uc, repo := newItemUseCase()
	ctx := context.Background()

	_, _, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Arroz", Quantity: dec("10"), Price: dec("1"), StockUnit: "kg",
	})
	require.NoError(t, err)

	_, created, err := uc.AddOrMergeStock(ctx, otherOwner, dto.AddStockRequest{
		ItemName: "Arroz", Quantity: dec("5"), Price: dec("1"), StockUnit: "kg",
	})
	require.NoError(t, err)

	assert.True(t, created, "la llave de fusión incluye al dueño")
	assert.Len(t, repo.items, 2)
}

func TestAddOrMergeStock_FactorClavadoEnUnoConUnidadesIguales(t *testing.T) {
	uc, _ := newItemUseCase()

	sellingUnit := "KG"
	factor := dec("24")
	item, _, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName:         "Azúcar",
		Quantity:         dec("10"),
		Price:            dec("3"),
		StockUnit:        "kg",
		SellingUnit:      &sellingUnit,
		ConversionFactor: &factor,
	})
	require.NoError(t, err)

	// "KG" y "kg" son la misma unidad: el factor enviado se descarta.
	assert.True(t, item.ConversionFactor.Equal(dec("1")),
		"unidades iguales sin distinguir mayúsculas fuerzan factor 1, fue %s", item.ConversionFactor)
}

func TestAddOrMergeStock_FactorNoPositivoSeNormalizaAUno(t *testing.T) {
	uc, _ := newItemUseCase()

	sellingUnit := "botella"
	factor := dec("-3")
	item, _, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName:         "Gaseosa",
		Quantity:         dec("10"),
		Price:            dec("18"),
		StockUnit:        "caja",
		SellingUnit:      &sellingUnit,
		ConversionFactor: &factor,
	})
	require.NoError(t, err)

	assert.True(t, item.ConversionFactor.Equal(dec("1")))
	assert.Equal(t, "botella", item.SellingUnit)
}

func TestAddOrMergeStock_CrearConCantidadCeroPermitido(t *testing.T) {
	uc, _ := newItemUseCase()

	// Registrar el artículo antes de tener stock es válido.
	item, created, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName: "Harina", Quantity: dec("0"), Price: dec("2"), StockUnit: "kg",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, item.Quantity.IsZero())
}

func TestAddOrMergeStock_FusionConCantidadCeroRechazada(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()

	_, _, err := uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Harina", Quantity: dec("10"), Price: dec("2"), StockUnit: "kg",
	})
	require.NoError(t, err)

	_, _, err = uc.AddOrMergeStock(ctx, owner, dto.AddStockRequest{
		ItemName: "Harina", Quantity: dec("0"), Price: dec("2"), StockUnit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"fusionar un lote sin cantidad diluiría el costo sin aportar stock")
}

func TestAddOrMergeStock_EntradaInvalida(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.AddStockRequest
	}{
		{"nombre vacío", dto.AddStockRequest{ItemName: "  ", Quantity: dec("1"), Price: dec("1"), StockUnit: "kg"}},
		{"unidad vacía", dto.AddStockRequest{ItemName: "X", Quantity: dec("1"), Price: dec("1"), StockUnit: ""}},
		{"cantidad negativa", dto.AddStockRequest{ItemName: "X", Quantity: dec("-1"), Price: dec("1"), StockUnit: "kg"}},
		{"precio negativo", dto.AddStockRequest{ItemName: "X", Quantity: dec("1"), Price: dec("-1"), StockUnit: "kg"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.AddOrMergeStock(ctx, owner, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// racingItemRepo simula la carrera crear-vs-crear: la búsqueda bloqueada no ve
// nada (la transacción rival aún no comitea) pero el índice único rechaza el
// INSERT con duplicado.
type racingItemRepo struct {
	*fakeItemRepo
}

func (r *racingItemRepo) GetByOwnerAndKeyForUpdate(string, string, string) (*entity.Item, error) {
	return nil, nil
}

func (r *racingItemRepo) Create(*entity.Item) error {
	return domain.ErrDuplicate
}

func TestAddOrMergeStock_CarreraCrearVsCrearRetornaConflict(t *testing.T) {
	repo := &racingItemRepo{fakeItemRepo: newFakeItemRepo()}
	tx := &fakeTxRunner{itemRepo: repo, saleRepo: newFakeSaleRepo()}
	uc := inventory.NewItemUseCase(tx, repo)

	_, _, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName: "Arroz", Quantity: dec("10"), Price: dec("1"), StockUnit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"la violación del índice único debe aflorar como conflicto reintentable")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateFields
// ──────────────────────────────────────────────────────────────────────────────

func seedItem(t *testing.T, uc *inventory.ItemUseCase) *dto.ItemResponse {
	t.Helper()
	sellingUnit := "botella"
	factor := dec("24")
	item, _, err := uc.AddOrMergeStock(context.Background(), owner, dto.AddStockRequest{
		ItemName:         "Gaseosa",
		Quantity:         dec("10"),
		Price:            dec("18"),
		StockUnit:        "caja",
		SellingUnit:      &sellingUnit,
		ConversionFactor: &factor,
	})
	require.NoError(t, err)
	return item
}

func TestUpdateFields_ParcheVacioNoTocaNada(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	out, changed, err := uc.UpdateFields(context.Background(), owner, item.ID, dto.UpdateItemRequest{})
	require.NoError(t, err)

	assert.False(t, changed, "parche vacío no debe contar como cambio")
	assert.Equal(t, item.UpdatedAt, out.UpdatedAt, "updated_at no debe moverse")
}

func TestUpdateFields_MismoValorEsNoOp(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	price := dec("18")
	out, changed, err := uc.UpdateFields(context.Background(), owner, item.ID, dto.UpdateItemRequest{
		Price: &price,
	})
	require.NoError(t, err)

	assert.False(t, changed, "enviar el mismo valor no es un cambio efectivo")
	assert.Equal(t, item.UpdatedAt, out.UpdatedAt)
}

func TestUpdateFields_CambioDePrecio(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	price := dec("20")
	out, changed, err := uc.UpdateFields(context.Background(), owner, item.ID, dto.UpdateItemRequest{
		Price: &price,
	})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.True(t, out.Price.Equal(dec("20")))
	assert.True(t, out.Quantity.Equal(item.Quantity), "la cantidad nunca cambia por parche")
}

func TestUpdateFields_UnidadDeVentaIgualAStockFuerzaFactorUno(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	sellingUnit := "caja"
	out, changed, err := uc.UpdateFields(context.Background(), owner, item.ID, dto.UpdateItemRequest{
		SellingUnit: &sellingUnit,
	})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "caja", out.SellingUnit)
	assert.True(t, out.ConversionFactor.Equal(dec("1")),
		"igualar unidades debe re-derivar el factor a 1, fue %s", out.ConversionFactor)
}

func TestUpdateFields_FactorNoPositivoRechazado(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	factor := dec("0")
	_, _, err := uc.UpdateFields(context.Background(), owner, item.ID, dto.UpdateItemRequest{
		ConversionFactor: &factor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"a diferencia del alta, el parche rechaza factores no positivos")
}

func TestUpdateFields_OtroDuenoForbidden(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	name := "Robo"
	_, _, err := uc.UpdateFields(context.Background(), otherOwner, item.ID, dto.UpdateItemRequest{
		ItemName: &name,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateFields_NoExisteNotFound(t *testing.T) {
	uc, _ := newItemUseCase()

	name := "X"
	_, _, err := uc.UpdateFields(context.Background(), owner, "no-existe", dto.UpdateItemRequest{
		ItemName: &name,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Get / List / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_OtroDuenoForbidden(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	_, err := uc.Get(otherOwner, item.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_OtroDuenoForbidden(t *testing.T) {
	uc, repo := newItemUseCase()
	item := seedItem(t, uc)

	err := uc.Delete(otherOwner, item.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, repo.items, 1, "el artículo no debe borrarse")
}

func TestDelete_YListaDelDueno(t *testing.T) {
	uc, _ := newItemUseCase()
	item := seedItem(t, uc)

	require.NoError(t, uc.Delete(owner, item.ID))

	list, err := uc.List(owner)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
