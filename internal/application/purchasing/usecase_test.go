package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/testutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Arnés
// ─────────────────────────────────────────────────────────────────────────────

type purchasingHarness struct {
	runner *testutil.FakeTxRunner
	sups   *testutil.FakeSupplierRepo
	rates  *testutil.FakeVatRateRepo
	uc     *UseCase
}

func newPurchasingHarness() *purchasingHarness {
	runner := testutil.NewFakeTxRunner()
	sups := testutil.NewFakeSupplierRepo()
	rates := testutil.NewFakeVatRateRepo()
	stock := ledger.NewUseCase(runner)
	return &purchasingHarness{
		runner: runner,
		sups:   sups,
		rates:  rates,
		uc:     NewUseCase(runner, stock, runner.Order, runner.Prod, sups, rates),
	}
}

func (h *purchasingHarness) seedSupplier(t *testing.T, name string) *entity.Supplier {
	t.Helper()
	s := &entity.Supplier{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	require.NoError(t, h.sups.Create(s))
	return s
}

func (h *purchasingHarness) seedProduct(t *testing.T, name, cost string, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           name,
		Name:          name,
		Unit:          entity.UnitPiece,
		StockQuantity: stock,
		TrackStock:    true,
		CostPrice:     decimal.RequireFromString(cost),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, h.runner.Prod.Create(p))
	return p
}

func (h *purchasingHarness) mustDraft(t *testing.T, supplierID string, items ...dto.PurchaseItemRequest) *dto.PurchaseOrderResponse {
	t.Helper()
	order, err := h.uc.CreateDraft(context.Background(), "comprador", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      items,
	})
	require.NoError(t, err)
	return order
}

// ─────────────────────────────────────────────────────────────────────────────
// Alta de orden
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateDraft_SnapshotDeCosto(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "1.80", 0)

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 50})

	assert.Equal(t, entity.POStatusDraft, order.Status)
	require.Len(t, order.Items, 1)
	assert.True(t, decimal.RequireFromString("1.80").Equal(order.Items[0].UnitCost))
	assert.True(t, decimal.RequireFromString("90").Equal(order.Items[0].TotalNet))

	// Crear la orden no toca stock ni costo
	assert.Zero(t, h.runner.Prod.Products[p.ID].StockQuantity)
	assert.Empty(t, h.runner.Mov.Movements)
}

func TestCreateDraft_OverrideDeCosto(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "1.80", 0)

	cost := decimal.RequireFromString("1.65")
	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 10, UnitCost: &cost})
	assert.True(t, cost.Equal(order.Items[0].UnitCost))
}

func TestCreateDraft_Validaciones(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "1.80", 0)

	_, err := h.uc.CreateDraft(context.Background(), "comprador", dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.CreateDraft(context.Background(), "comprador", dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.uc.CreateDraft(context.Background(), "comprador", dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ─────────────────────────────────────────────────────────────────────────────

func TestTransition_FlujoCompleto(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "2.00", 10)

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 20})

	res, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusOrdered})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusDraft, res.From)
	assert.False(t, res.Booked)

	res, err = h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	require.NoError(t, err)
	assert.True(t, res.Booked)
	assert.Equal(t, 1, res.Movements)

	// Stock y costo contabilizados
	got := h.runner.Prod.Products[p.ID]
	assert.Equal(t, int64(30), got.StockQuantity)
	assert.True(t, decimal.RequireFromString("2.00").Equal(got.CostPrice))

	movs := h.runner.Mov.ByKind(entity.MovementKindPurchase)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementRefPurchaseOrder, movs[0].RefKind)
	assert.Equal(t, order.ID, movs[0].RefID)

	// La recepción queda sellada con fecha propia, separada de la orden
	received := h.runner.Order.Orders[order.ID]
	require.NotNil(t, received.ReceivedAt)
	assert.WithinDuration(t, time.Now(), *received.ReceivedAt, time.Minute)
}

func TestTransition_SinRecepcionNoHayFecha(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "2.00", 10)

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 5})
	_, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusCancelled})
	require.NoError(t, err)

	assert.Nil(t, h.runner.Order.Orders[order.ID].ReceivedAt)
}

func TestTransition_CostoPromedioPonderado(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	// 10 unidades a 2.00 en stock; entran 30 a 3.00 → (20 + 90) / 40 = 2.75
	p := h.seedProduct(t, "HAR-001", "2.00", 10)

	cost := decimal.RequireFromString("3.00")
	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 30, UnitCost: &cost})

	_, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	require.NoError(t, err)

	got := h.runner.Prod.Products[p.ID]
	assert.True(t, decimal.RequireFromString("2.75").Equal(got.CostPrice), "costo promedio: %s", got.CostPrice)
	assert.Equal(t, int64(40), got.StockQuantity)
}

func TestTransition_RecepcionIdempotente(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "2.00", 0)

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 5})

	first, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	require.NoError(t, err)
	assert.True(t, first.Booked)
	assert.Equal(t, 1, first.Movements)

	// Segunda recepción: no-op, ni stock ni movimientos nuevos
	second, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	require.NoError(t, err)
	assert.False(t, second.Booked)
	assert.Zero(t, second.Movements)

	assert.Equal(t, int64(5), h.runner.Prod.Products[p.ID].StockQuantity)
	assert.Len(t, h.runner.Mov.ByKind(entity.MovementKindPurchase), 1)
}

func TestTransition_Ilegales(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "HAR-001", "2.00", 0)

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 5})

	_, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusCancelled})
	require.NoError(t, err)

	// CANCELLED es terminal
	_, err = h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusOrdered})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Cancelar no movió stock
	assert.Empty(t, h.runner.Mov.Movements)
}

func TestTransition_EstadoInvalido(t *testing.T) {
	h := newPurchasingHarness()

	_, err := h.uc.Transition(context.Background(), "comprador", "x", dto.TransitionRequest{Status: "DRAFT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.Transition(context.Background(), "comprador", "no-existe", dto.TransitionRequest{Status: entity.POStatusOrdered})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_ProductoSinSeguimiento(t *testing.T) {
	h := newPurchasingHarness()
	sup := h.seedSupplier(t, "Importadora Rhein")
	p := h.seedProduct(t, "SRV-001", "10.00", 0)
	p.TrackStock = false

	order := h.mustDraft(t, sup.ID, dto.PurchaseItemRequest{ProductID: p.ID, Quantity: 3})

	res, err := h.uc.Transition(context.Background(), "comprador", order.ID, dto.TransitionRequest{Status: entity.POStatusReceived})
	require.NoError(t, err)
	assert.True(t, res.Booked)
	assert.Zero(t, res.Movements)
	assert.Empty(t, h.runner.Mov.Movements)
}
