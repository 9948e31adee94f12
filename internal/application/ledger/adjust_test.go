package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del único camino de mutación de stock: el caché del producto y el
// ledger deben quedar consistentes después de cualquier secuencia de ajustes.
// ──────────────────────────────────────────────────────────────────────────────

func seedProduct(tx *testutil.FakeTxRunner, id string, qty int64, tracked bool) *entity.Product {
	p := &entity.Product{
		ID:            id,
		SKU:           "10001",
		Name:          "Producto de prueba",
		Unit:          entity.UnitPiece,
		StockQuantity: qty,
		TrackStock:    tracked,
		IsActive:      true,
	}
	tx.Prod.Products[id] = p
	return p
}

// TestAdjust_CacheYLedgerConsistentes aplica una secuencia de deltas y
// verifica la propiedad central: caché final = inicial + Σ deltas, y además
// igual al StockAfter del último movimiento.
func TestAdjust_CacheYLedgerConsistentes(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "p1", 10, true)

	deltas := []struct {
		delta int64
		kind  string
	}{
		{+5, entity.MovementKindPurchase},
		{-3, entity.MovementKindSale},
		{-1, entity.MovementKindDamage},
		{+2, entity.MovementKindReturn},
		{-7, entity.MovementKindSale},
	}
	var sum int64
	for _, d := range deltas {
		res, err := uc.Adjust(context.Background(), ledger.AdjustInput{
			ProductID: "p1", Delta: d.delta, Kind: d.kind, Actor: "tester",
		})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		sum += d.delta
	}

	p := tx.Prod.Products["p1"]
	assert.Equal(t, int64(10)+sum, p.StockQuantity, "caché = inicial + suma de deltas")

	require.Len(t, tx.Mov.Movements, len(deltas))
	last := tx.Mov.Movements[len(tx.Mov.Movements)-1]
	assert.Equal(t, p.StockQuantity, last.StockAfter, "caché = StockAfter del último movimiento")

	// Cada fila intermedia también lleva su saldo correcto
	running := int64(10)
	for i, m := range tx.Mov.Movements {
		running += m.Quantity
		assert.Equal(t, running, m.StockAfter, "movimiento %d", i)
	}
}

// TestAdjust_SinSeguimientoEsNoOp un producto con TrackStock=false nunca
// produce movimiento ni cambia su caché, venga la llamada de donde venga.
func TestAdjust_SinSeguimientoEsNoOp(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "svc", 0, false)

	for _, kind := range []string{
		entity.MovementKindSale, entity.MovementKindPurchase, entity.MovementKindCorrection,
	} {
		res, err := uc.Adjust(context.Background(), ledger.AdjustInput{
			ProductID: "svc", Delta: -2, Kind: kind, Actor: "tester",
		})
		require.NoError(t, err, "no-op defensivo, no error")
		assert.False(t, res.Applied)
	}

	assert.Empty(t, tx.Mov.Movements, "cero filas en el ledger")
	assert.Equal(t, int64(0), tx.Prod.Products["svc"].StockQuantity)
}

// TestAdjust_PuedeQuedarNegativo el POS nunca bloquea una venta: el stock
// puede quedar negativo y se corrige luego en inventario.
func TestAdjust_PuedeQuedarNegativo(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "p1", 1, true)

	res, err := uc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: "p1", Delta: -3, Kind: entity.MovementKindSale, Actor: "pos",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(-2), res.StockAfter)
	assert.Equal(t, int64(-2), tx.Prod.Products["p1"].StockQuantity)
}

// TestAdjust_Validaciones entradas rechazadas antes de tocar nada.
func TestAdjust_Validaciones(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "p1", 5, true)

	cases := []ledger.AdjustInput{
		{ProductID: "", Delta: 1, Kind: entity.MovementKindSale},
		{ProductID: "p1", Delta: 0, Kind: entity.MovementKindSale},
		{ProductID: "p1", Delta: 1, Kind: "TELEPORT"},
	}
	for _, in := range cases {
		_, err := uc.Adjust(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID: "fantasma", Delta: 1, Kind: entity.MovementKindCorrection,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, tx.Mov.Movements)
}

// TestCorrect_DiferenciaDeConteo la corrección sintetiza un movimiento
// CORRECTION por la diferencia contado − caché; conteo igual no genera nada.
func TestCorrect_DiferenciaDeConteo(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "p1", 10, true)

	res, name, err := uc.Correct(context.Background(), "p1", 8, "admin", "conteo anual")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "Producto de prueba", name)
	assert.Equal(t, int64(8), res.StockAfter)

	require.Len(t, tx.Mov.Movements, 1)
	m := tx.Mov.Movements[0]
	assert.Equal(t, entity.MovementKindCorrection, m.Kind)
	assert.Equal(t, int64(-2), m.Quantity)
	assert.Equal(t, "conteo anual", m.Note)
	assert.Equal(t, "admin", m.CreatedBy)

	// Conteo que coincide con el caché: no-op
	res, _, err = uc.Correct(context.Background(), "p1", 8, "admin", "")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Len(t, tx.Mov.Movements, 1)
}

// TestCorrect_SinSeguimiento corrección sobre producto sin seguimiento: no-op.
func TestCorrect_SinSeguimiento(t *testing.T) {
	tx := testutil.NewFakeTxRunner()
	uc := ledger.NewUseCase(tx)
	seedProduct(tx, "svc", 0, false)

	res, _, err := uc.Correct(context.Background(), "svc", 99, "admin", "")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Empty(t, tx.Mov.Movements)
}
