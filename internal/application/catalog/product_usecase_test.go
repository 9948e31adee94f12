package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/testutil"
	"github.com/stockkeeper/retail-api/pkg/ean"
)

// ─────────────────────────────────────────────────────────────────────────────
// Arnés
// ─────────────────────────────────────────────────────────────────────────────

type catalogHarness struct {
	runner   *testutil.FakeTxRunner
	cats     *testutil.FakeCategoryRepo
	sups     *testutil.FakeSupplierRepo
	rates    *testutil.FakeVatRateRepo
	products *ProductUseCase
	catalog  *CatalogUseCase
}

func newCatalogHarness() *catalogHarness {
	runner := testutil.NewFakeTxRunner()
	cats := testutil.NewFakeCategoryRepo()
	sups := testutil.NewFakeSupplierRepo()
	rates := testutil.NewFakeVatRateRepo()
	stock := ledger.NewUseCase(runner)
	return &catalogHarness{
		runner:   runner,
		cats:     cats,
		sups:     sups,
		rates:    rates,
		products: NewProductUseCase(runner.Prod, cats, sups, rates, runner.Mov, stock, "20"),
		catalog:  NewCatalogUseCase(cats, sups, rates),
	}
}

func (h *catalogHarness) mustCategory(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	c, err := h.catalog.CreateCategory(dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateCategory_PrefijosMonotonos(t *testing.T) {
	h := newCatalogHarness()

	a := h.mustCategory(t, "Bebidas")
	b := h.mustCategory(t, "Lácteos")
	c := h.mustCategory(t, "Panadería")

	assert.Equal(t, 1, a.SKUPrefix)
	assert.Equal(t, 2, b.SKUPrefix)
	assert.Equal(t, 3, c.SKUPrefix)
}

func TestCreateCategory_SinNombre(t *testing.T) {
	h := newCatalogHarness()

	_, err := h.catalog.CreateCategory(dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Generación de SKU y EAN
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SKUSufijosCrecientes(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	first, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Agua mineral", CategoryID: cat.ID,
	})
	require.NoError(t, err)
	second, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Agua con gas", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "10001", first.SKU)
	assert.Equal(t, "10002", second.SKU)
}

func TestCreateProduct_SKUNoReutilizaSufijo(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	// Un SKU manual alto mueve el tope; el siguiente generado va detrás
	_, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Jugo", CategoryID: cat.ID, SKU: "10042",
	})
	require.NoError(t, err)

	next, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Té frío", CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "10043", next.SKU)
}

// Los prefijos "1" y "12" se solapan como cadenas: el escaneo de sufijos
// debe quedarse dentro de la categoría o "120001" contamina el tope de la
// categoría 1.
func TestCreateProduct_SKUNoCruzaCategoriasConPrefijoSolapado(t *testing.T) {
	h := newCatalogHarness()
	cats := make([]*dto.CategoryResponse, 0, 12)
	for i := 1; i <= 12; i++ {
		cats = append(cats, h.mustCategory(t, fmt.Sprintf("Categoría %d", i)))
	}
	require.Equal(t, 12, cats[11].SKUPrefix)

	twelfth, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Estantería", CategoryID: cats[11].ID,
	})
	require.NoError(t, err)
	require.Equal(t, "120001", twelfth.SKU)

	first, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Agua mineral", CategoryID: cats[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "10001", first.SKU)

	second, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Agua con gas", CategoryID: cats[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "10002", second.SKU)
}

func TestCreateProduct_EANGeneradoValido(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Limonada", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	assert.Len(t, p.EAN, 13)
	assert.True(t, ean.Valid(p.EAN), "EAN generado con dígito de control inválido: %s", p.EAN)
	assert.Equal(t, "20", p.EAN[:2])
}

func TestCreateProduct_SKUDuplicado(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	_, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Cola", CategoryID: cat.ID, SKU: "10001",
	})
	require.NoError(t, err)

	_, err = h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Cola Zero", CategoryID: cat.ID, SKU: "10001",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_EANManualDuplicado(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	_, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Cola", CategoryID: cat.ID, EAN: "2012345678903",
	})
	require.NoError(t, err)

	_, err = h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Cola Zero", CategoryID: cat.ID, EAN: "2012345678903",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// dupOnceRepo falla el primer insert con ErrDuplicate, como una colisión de
// identificador generado con un insert concurrente.
type dupOnceRepo struct {
	*testutil.FakeProductRepo
	fallos int
}

func (r *dupOnceRepo) Create(p *entity.Product) error {
	if r.fallos > 0 {
		r.fallos--
		return domain.ErrDuplicate
	}
	return r.FakeProductRepo.Create(p)
}

func TestCreateProduct_ReintentaInsertAnteColision(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")
	repo := &dupOnceRepo{FakeProductRepo: h.runner.Prod, fallos: 1}
	uc := NewProductUseCase(repo, h.cats, h.sups, h.rates, h.runner.Mov, ledger.NewUseCase(h.runner), "20")

	p, err := uc.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Agua tónica", CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "10001", p.SKU)
	assert.True(t, ean.Valid(p.EAN))
}

// ─────────────────────────────────────────────────────────────────────────────
// Stock inicial y seguimiento
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_StockInicialComoMovimiento(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Cerveza artesanal", CategoryID: cat.ID, InitialStock: 24,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(24), p.StockQuantity)
	initial := h.runner.Mov.ByKind(entity.MovementKindInitial)
	require.Len(t, initial, 1)
	assert.Equal(t, p.ID, initial[0].ProductID)
	assert.Equal(t, int64(24), initial[0].Quantity)
	assert.Equal(t, int64(24), initial[0].StockAfter)
}

func TestCreateProduct_SinSeguimientoNoAsientaInicial(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Servicios")
	track := false

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Afilado de cuchillos", CategoryID: cat.ID,
		TrackStock: &track, InitialStock: 5,
	})
	require.NoError(t, err)

	assert.False(t, p.TrackStock)
	assert.Zero(t, p.StockQuantity)
	assert.Empty(t, h.runner.Mov.Movements)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tarifa de IVA por defecto
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_TarifaPorDefecto(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Alimentos")
	rate, err := h.catalog.CreateVatRate(dto.CreateVatRateRequest{
		Name: "Reducida", Rate: decimal.RequireFromString("2.60"), IsDefault: true,
	})
	require.NoError(t, err)

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Pan integral", CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, rate.ID, p.VatRateID)
}

func TestCreateProduct_TarifaInexistente(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Alimentos")

	_, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Queso", CategoryID: cat.ID, VatRateID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Edición y búsqueda
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_NoTocaStockNiCosto(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Sidra", CategoryID: cat.ID, InitialStock: 10,
		CostPrice: decimal.RequireFromString("2.10"),
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("4.90")
	updated, err := h.products.Update(p.ID, dto.UpdateProductRequest{
		Name: "Sidra seca", SalesPrice: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sidra seca", updated.Name)
	assert.True(t, newPrice.Equal(updated.SalesPrice))
	assert.Equal(t, int64(10), updated.StockQuantity)
	assert.True(t, decimal.RequireFromString("2.10").Equal(updated.CostPrice))
}

func TestUpdateProduct_Archivar(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Vermut", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	inactive := false
	updated, err := h.products.Update(p.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestSearch_PliegaDiacriticos(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Alimentos")

	_, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Musli de avena", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	// "müsli" con diéresis debe plegar a "musli" y encontrar el producto
	res, err := h.products.Search("müsli", 10)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Musli de avena", res.Results[0].Name)
}

func TestSearch_PorEANExacto(t *testing.T) {
	h := newCatalogHarness()
	cat := h.mustCategory(t, "Bebidas")

	p, err := h.products.Create(context.Background(), "tester", dto.CreateProductRequest{
		Name: "Kombucha", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	res, err := h.products.Search(p.EAN, 10)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, p.ID, res.Results[0].ID)
}

func TestSearch_Vacia(t *testing.T) {
	h := newCatalogHarness()

	res, err := h.products.Search("", 10)
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}
