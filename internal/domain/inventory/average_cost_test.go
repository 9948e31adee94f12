package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stockkeeper/retail-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestAverageCost_Ponderado mezcla 10 unidades a 2.00 con 10 a 4.00 → 3.00.
func TestAverageCost_Ponderado(t *testing.T) {
	got := inventory.AverageCost(10, d("2.00"), 10, d("4.00"))
	assert.True(t, got.Equal(d("3.00")), "esperado 3.00, obtenido %s", got)
}

// TestAverageCost_StockCero primera compra fija el costo al de entrada.
func TestAverageCost_StockCero(t *testing.T) {
	got := inventory.AverageCost(0, decimal.Zero, 5, d("7.50"))
	assert.True(t, got.Equal(d("7.50")))
}

// TestAverageCost_StockNegativo el stock negativo no envenena el promedio:
// se pondera como cero y el costo resultante es el de la entrada.
func TestAverageCost_StockNegativo(t *testing.T) {
	got := inventory.AverageCost(-3, d("2.00"), 4, d("5.00"))
	assert.True(t, got.Equal(d("5.00")), "esperado 5.00, obtenido %s", got)
}

// TestAverageCost_SinEntrada cantidad de entrada cero conserva el costo actual.
func TestAverageCost_SinEntrada(t *testing.T) {
	got := inventory.AverageCost(0, d("2.00"), 0, d("9.99"))
	assert.True(t, got.Equal(d("2.00")))
}
