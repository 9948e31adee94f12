// Package testutil provee repositorios en memoria para tests de casos de
// uso. Implementan los puertos de dominio sin base de datos; el TxRunner
// falso ejecuta el callback directo (sin transacción real).
package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// ── Productos ─────────────────────────────────────────────────────────────────

// FakeProductRepo repositorio de productos en memoria.
type FakeProductRepo struct {
	Products map[string]*entity.Product
}

var _ repository.ProductRepository = (*FakeProductRepo)(nil)

// NewFakeProductRepo construye el repo vacío.
func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{Products: make(map[string]*entity.Product)}
}

// Create replica la restricción de unicidad de SKU y EAN del esquema real.
func (r *FakeProductRepo) Create(p *entity.Product) error {
	for _, other := range r.Products {
		if strings.EqualFold(other.SKU, p.SKU) {
			return domain.ErrDuplicate
		}
		if p.EAN != "" && other.EAN == p.EAN {
			return domain.ErrDuplicate
		}
	}
	r.Products[p.ID] = p
	return nil
}

func (r *FakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.Products[id], nil
}

func (r *FakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.Products {
		if strings.EqualFold(p.SKU, sku) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *FakeProductRepo) GetByEAN(ean string) (*entity.Product, error) {
	for _, p := range r.Products {
		if p.EAN == ean {
			return p, nil
		}
	}
	return nil, nil
}

func (r *FakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.Products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *FakeProductRepo) Update(p *entity.Product) error {
	r.Products[p.ID] = p
	return nil
}

func (r *FakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.Products[id], nil
}

func (r *FakeProductRepo) UpdateStock(productID string, quantity int64) error {
	if p, ok := r.Products[productID]; ok {
		p.StockQuantity = quantity
	}
	return nil
}

func (r *FakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.Products[productID]; ok {
		p.CostPrice = cost
	}
	return nil
}

func (r *FakeProductRepo) MaxSKUSuffix(categoryID, prefix string) (int, error) {
	max := 0
	for _, p := range r.Products {
		if p.CategoryID != categoryID || !strings.HasPrefix(p.SKU, prefix) {
			continue
		}
		suffix := p.SKU[len(prefix):]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *FakeProductRepo) Search(query, normName string, limit int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.Products {
		if p.EAN == query || strings.EqualFold(p.SKU, query) ||
			strings.Contains(strings.ToLower(p.Name), strings.ToLower(normName)) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ── Ledger ────────────────────────────────────────────────────────────────────

// FakeMovementRepo ledger en memoria (solo apéndices, como el real).
type FakeMovementRepo struct {
	Movements []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*FakeMovementRepo)(nil)

// NewFakeMovementRepo construye el ledger vacío.
func NewFakeMovementRepo() *FakeMovementRepo { return &FakeMovementRepo{} }

func (r *FakeMovementRepo) Create(m *entity.StockMovement) error {
	r.Movements = append(r.Movements, m)
	return nil
}

func (r *FakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.Movements {
		if m.ProductID == productID {
			list = append(list, m)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *FakeMovementRepo) ListByRef(refKind, refID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.Movements {
		if m.RefKind == refKind && m.RefID == refID {
			list = append(list, m)
		}
	}
	return list, nil
}

// ByKind filtra los movimientos por tipo (helper de aserción).
func (r *FakeMovementRepo) ByKind(kind string) []*entity.StockMovement {
	var list []*entity.StockMovement
	for _, m := range r.Movements {
		if m.Kind == kind {
			list = append(list, m)
		}
	}
	return list
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// FakeSaleRepo ventas en memoria.
type FakeSaleRepo struct {
	Sales map[string]*entity.Sale
}

var _ repository.SaleRepository = (*FakeSaleRepo)(nil)

// NewFakeSaleRepo construye el repo vacío.
func NewFakeSaleRepo() *FakeSaleRepo {
	return &FakeSaleRepo{Sales: make(map[string]*entity.Sale)}
}

// Create replica el índice único parcial sobre external_ref no vacío.
func (r *FakeSaleRepo) Create(s *entity.Sale) error {
	if s.ExternalRef != "" {
		for _, other := range r.Sales {
			if other.ExternalRef == s.ExternalRef {
				return domain.ErrDuplicate
			}
		}
	}
	r.Sales[s.ID] = s
	return nil
}

func (r *FakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.Sales[id], nil
}

func (r *FakeSaleRepo) GetByExternalRef(ref string) (*entity.Sale, error) {
	for _, s := range r.Sales {
		if s.ExternalRef != "" && s.ExternalRef == ref {
			return s, nil
		}
	}
	return nil, nil
}

func (r *FakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.Sales {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *FakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.Sales[id], nil
}

func (r *FakeSaleRepo) UpdateStatus(id, status string) error {
	if s, ok := r.Sales[id]; ok {
		s.Status = status
		s.UpdatedAt = time.Now()
	}
	return nil
}

func (r *FakeSaleRepo) UpdateTotals(id string, gross, net decimal.Decimal) error {
	if s, ok := r.Sales[id]; ok {
		s.TotalGross = gross
		s.TotalNet = net
	}
	return nil
}

// ── Órdenes de compra ────────────────────────────────────────────────────────

// FakePurchaseOrderRepo órdenes en memoria.
type FakePurchaseOrderRepo struct {
	Orders map[string]*entity.PurchaseOrder
}

var _ repository.PurchaseOrderRepository = (*FakePurchaseOrderRepo)(nil)

// NewFakePurchaseOrderRepo construye el repo vacío.
func NewFakePurchaseOrderRepo() *FakePurchaseOrderRepo {
	return &FakePurchaseOrderRepo{Orders: make(map[string]*entity.PurchaseOrder)}
}

func (r *FakePurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.Orders[o.ID] = o
	return nil
}

func (r *FakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.Orders[id], nil
}

func (r *FakePurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	for _, o := range r.Orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *FakePurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.Orders[id], nil
}

func (r *FakePurchaseOrderRepo) UpdateStatus(id, status string) error {
	if o, ok := r.Orders[id]; ok {
		o.Status = status
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *FakePurchaseOrderRepo) UpdateBooked(id string, booked bool) error {
	if o, ok := r.Orders[id]; ok {
		o.IsBooked = booked
	}
	return nil
}

func (r *FakePurchaseOrderRepo) UpdateReceived(id string, receivedAt time.Time) error {
	if o, ok := r.Orders[id]; ok {
		o.ReceivedAt = &receivedAt
	}
	return nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

// FakeCategoryRepo categorías en memoria.
type FakeCategoryRepo struct {
	Categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*FakeCategoryRepo)(nil)

// NewFakeCategoryRepo construye el repo vacío.
func NewFakeCategoryRepo() *FakeCategoryRepo {
	return &FakeCategoryRepo{Categories: make(map[string]*entity.Category)}
}

func (r *FakeCategoryRepo) Create(c *entity.Category) error {
	r.Categories[c.ID] = c
	return nil
}

func (r *FakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.Categories[id], nil
}

func (r *FakeCategoryRepo) List() ([]*entity.Category, error) {
	var list []*entity.Category
	for _, c := range r.Categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKUPrefix < list[j].SKUPrefix })
	return list, nil
}

func (r *FakeCategoryRepo) MaxSKUPrefix() (int, error) {
	max := 0
	for _, c := range r.Categories {
		if c.SKUPrefix > max {
			max = c.SKUPrefix
		}
	}
	return max, nil
}

// FakeSupplierRepo proveedores en memoria.
type FakeSupplierRepo struct {
	Suppliers map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*FakeSupplierRepo)(nil)

// NewFakeSupplierRepo construye el repo vacío.
func NewFakeSupplierRepo() *FakeSupplierRepo {
	return &FakeSupplierRepo{Suppliers: make(map[string]*entity.Supplier)}
}

func (r *FakeSupplierRepo) Create(s *entity.Supplier) error {
	r.Suppliers[s.ID] = s
	return nil
}

func (r *FakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.Suppliers[id], nil
}

func (r *FakeSupplierRepo) List() ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	for _, s := range r.Suppliers {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// FakeVatRateRepo tarifas de IVA en memoria.
type FakeVatRateRepo struct {
	Rates map[string]*entity.VatRate
}

var _ repository.VatRateRepository = (*FakeVatRateRepo)(nil)

// NewFakeVatRateRepo construye el repo vacío.
func NewFakeVatRateRepo() *FakeVatRateRepo {
	return &FakeVatRateRepo{Rates: make(map[string]*entity.VatRate)}
}

func (r *FakeVatRateRepo) Create(v *entity.VatRate) error {
	r.Rates[v.ID] = v
	return nil
}

func (r *FakeVatRateRepo) GetByID(id string) (*entity.VatRate, error) {
	return r.Rates[id], nil
}

func (r *FakeVatRateRepo) List() ([]*entity.VatRate, error) {
	var list []*entity.VatRate
	for _, v := range r.Rates {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *FakeVatRateRepo) GetDefault() (*entity.VatRate, error) {
	for _, v := range r.Rates {
		if v.IsDefault {
			return v, nil
		}
	}
	return nil, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// FakeTxRunner ejecuta los callbacks directo sobre los repos en memoria.
// Implementa los puertos TxRunner de ledger, ventas y compras.
type FakeTxRunner struct {
	Mov   *FakeMovementRepo
	Prod  *FakeProductRepo
	Sale  *FakeSaleRepo
	Order *FakePurchaseOrderRepo
}

// NewFakeTxRunner construye el runner con repos nuevos.
func NewFakeTxRunner() *FakeTxRunner {
	return &FakeTxRunner{
		Mov:   NewFakeMovementRepo(),
		Prod:  NewFakeProductRepo(),
		Sale:  NewFakeSaleRepo(),
		Order: NewFakePurchaseOrderRepo(),
	}
}

func (r *FakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.Mov, r.Prod)
}

func (r *FakeTxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return fn(r.Mov, r.Prod, r.Sale)
}

func (r *FakeTxRunner) RunPurchase(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(r.Mov, r.Prod, r.Order)
}
