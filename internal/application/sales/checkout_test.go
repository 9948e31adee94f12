package sales

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

type salesHarness struct {
	runner *testutil.FakeTxRunner
	rates  *testutil.FakeVatRateRepo
	uc     *UseCase
}

func newSalesHarness() *salesHarness {
	runner := testutil.NewFakeTxRunner()
	rates := testutil.NewFakeVatRateRepo()
	stock := ledger.NewUseCase(runner)
	return &salesHarness{
		runner: runner,
		rates:  rates,
		uc:     NewUseCase(runner, stock, runner.Sale, rates),
	}
}

func (h *salesHarness) seedRate(t *testing.T, name, pct string) *entity.VatRate {
	t.Helper()
	rate := &entity.VatRate{
		ID:        uuid.New().String(),
		Name:      name,
		Rate:      decimal.RequireFromString(pct),
		CreatedAt: time.Now(),
	}
	require.NoError(t, h.rates.Create(rate))
	return rate
}

func (h *salesHarness) seedProduct(t *testing.T, name, priceGross string, stock int64, vatRateID string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           name,
		Name:          name,
		Unit:          entity.UnitPiece,
		StockQuantity: stock,
		TrackStock:    true,
		SalesPrice:    decimal.RequireFromString(priceGross),
		VatRateID:     vatRateID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, h.runner.Prod.Create(p))
	return p
}

// ─────────────────────────────────────────────────────────────────────────────
// Checkout
// ─────────────────────────────────────────────────────────────────────────────

func TestCheckout_SnapshotYDebito(t *testing.T) {
	h := newSalesHarness()
	rate := h.seedRate(t, "Normal", "8.10")
	p := h.seedProduct(t, "CAFE-001", "21.62", 10, rate.ID)

	sale, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.True(t, decimal.RequireFromString("21.62").Equal(sale.Items[0].UnitPriceGross))
	assert.True(t, rate.Rate.Equal(sale.Items[0].VatRate))
	assert.True(t, decimal.RequireFromString("43.24").Equal(sale.TotalGross))
	// 43.24 / 1.081 = 40.00
	assert.True(t, decimal.RequireFromString("40").Equal(sale.TotalNet), "neto: %s", sale.TotalNet)
	assert.True(t, decimal.RequireFromString("3.24").Equal(sale.TotalTax), "IVA: %s", sale.TotalTax)

	// Stock debitado vía ledger, con referencia a la venta
	assert.Equal(t, int64(8), h.runner.Prod.Products[p.ID].StockQuantity)
	movs, err := h.runner.Mov.ListByRef(entity.MovementRefSale, sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindSale, movs[0].Kind)
	assert.Equal(t, int64(-2), movs[0].Quantity)
}

func TestCheckout_CambioDePrecioPosteriorNoAlteraVenta(t *testing.T) {
	h := newSalesHarness()
	rate := h.seedRate(t, "Normal", "8.10")
	p := h.seedProduct(t, "TE-001", "5.00", 10, rate.ID)

	sale, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Sube el precio de catálogo después de vender
	p.SalesPrice = decimal.RequireFromString("9.00")

	got, err := h.uc.GetByID(sale.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5.00").Equal(got.Items[0].UnitPriceGross))
	assert.True(t, decimal.RequireFromString("5.00").Equal(got.TotalGross))
}

func TestCheckout_OverrideDePrecioYTarifa(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "VARIOS", "0.00", 0, "")
	p.TrackStock = false

	price := decimal.RequireFromString("12.50")
	rate := decimal.RequireFromString("2.60")
	sale, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: 1, UnitPriceGross: &price, VatRate: &rate}},
	})
	require.NoError(t, err)

	assert.True(t, price.Equal(sale.Items[0].UnitPriceGross))
	assert.True(t, rate.Equal(sale.Items[0].VatRate))
	// Producto sin seguimiento: la venta pasa pero no asienta movimiento
	assert.Empty(t, h.runner.Mov.Movements)
}

func TestCheckout_StockPuedeQuedarNegativo(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "PAN-001", "3.50", 1, "")

	_, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), h.runner.Prod.Products[p.ID].StockQuantity)
}

func TestCheckout_Validaciones(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "X", "1.00", 1, "")

	cases := []struct {
		name string
		in   dto.CheckoutRequest
	}{
		{"carrito vacío", dto.CheckoutRequest{}},
		{"cantidad cero", dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: 0}}}},
		{"cantidad negativa", dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: -1}}}},
		{"método de pago inválido", dto.CheckoutRequest{
			Items:         []dto.CheckoutItem{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: "trueque",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.uc.Checkout(context.Background(), "caja1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reembolso
// ─────────────────────────────────────────────────────────────────────────────

func TestRefund_ReversaStockYEsIdempotente(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "VINO-001", "15.00", 6, "")

	sale, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), h.runner.Prod.Products[p.ID].StockQuantity)

	first, err := h.uc.Refund(context.Background(), "caja1", sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusRefunded, first.Status)
	assert.False(t, first.AlreadyRefunded)
	assert.Equal(t, int64(6), h.runner.Prod.Products[p.ID].StockQuantity)
	require.Len(t, h.runner.Mov.ByKind(entity.MovementKindReturn), 1)

	// Segundo reembolso: no vuelve a mover stock
	second, err := h.uc.Refund(context.Background(), "caja1", sale.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyRefunded)
	assert.Equal(t, int64(6), h.runner.Prod.Products[p.ID].StockQuantity)
	assert.Len(t, h.runner.Mov.ByKind(entity.MovementKindReturn), 1)
}

func TestRefund_NotaDeReversionManual(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "WEB-001", "30.00", 10, "")

	sale, err := h.uc.CheckoutChannel(context.Background(), "webhook", entity.ChannelWeb, "shop-778899", dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentOther,
	})
	require.NoError(t, err)

	res, err := h.uc.Refund(context.Background(), "admin", sale.ID)
	require.NoError(t, err)
	require.NotNil(t, res.ManualReversal)
	assert.Equal(t, "shop-778899", res.ManualReversal.ExternalRef)
	assert.True(t, decimal.RequireFromString("30.00").Equal(res.ManualReversal.Amount))
	assert.Contains(t, res.ManualReversal.Instruction, "shop-778899")
}

func TestRefund_EfectivoSinNota(t *testing.T) {
	h := newSalesHarness()
	p := h.seedProduct(t, "CASH-001", "8.00", 5, "")

	sale, err := h.uc.Checkout(context.Background(), "caja1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	res, err := h.uc.Refund(context.Background(), "caja1", sale.ID)
	require.NoError(t, err)
	assert.Nil(t, res.ManualReversal)
}

func TestRefund_VentaInexistente(t *testing.T) {
	h := newSalesHarness()

	_, err := h.uc.Refund(context.Background(), "caja1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
