package vat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockkeeper/retail-api/internal/domain/vat"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestApportion_Vector107 es el vector de referencia de la aritmética IVA:
// bruto 107.00 con tasa 7% debe dar neto 100.00 e impuesto 7.00 exactos.
// Si alguien toca el divisor o el redondeo, este test falla de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func TestApportion_Vector107(t *testing.T) {
	gross := decimal.RequireFromString("107.00")
	rate := decimal.RequireFromString("7.00")

	net, tax := vat.Apportion(gross, rate)

	assert.True(t, net.Equal(decimal.RequireFromString("100")),
		"neto esperado 100.00, obtenido %s", net)
	assert.True(t, tax.Equal(decimal.RequireFromString("7")),
		"impuesto esperado 7.00, obtenido %s", tax)
}

// TestApportion_SumaInvariante verifica que neto + impuesto reconstruye
// siempre el bruto original (sin pérdida por redondeo).
func TestApportion_SumaInvariante(t *testing.T) {
	cases := []struct{ gross, rate string }{
		{"19.90", "8.10"},
		{"3.55", "2.60"},
		{"1250.00", "3.80"},
		{"0.05", "8.10"},
	}
	for _, tc := range cases {
		gross := decimal.RequireFromString(tc.gross)
		rate := decimal.RequireFromString(tc.rate)

		net, tax := vat.Apportion(gross, rate)

		require.True(t, net.Add(tax).Equal(gross),
			"bruto %s tasa %s: neto %s + impuesto %s != bruto", tc.gross, tc.rate, net, tax)
		assert.True(t, net.GreaterThan(decimal.Zero))
		assert.True(t, tax.GreaterThan(decimal.Zero))
	}
}

// TestApportion_TasaCero con tasa 0 el bruto es íntegramente neto.
func TestApportion_TasaCero(t *testing.T) {
	gross := decimal.RequireFromString("42.00")

	net, tax := vat.Apportion(gross, decimal.Zero)

	assert.True(t, net.Equal(gross))
	assert.True(t, tax.IsZero())
}

// TestBand_Clasificacion cubre los límites de cada banda de la declaración.
func TestBand_Clasificacion(t *testing.T) {
	cases := []struct {
		rate string
		want string
	}{
		{"8.10", vat.BandNormal},
		{"7.00", vat.BandNormal},
		{"3.80", vat.BandReduced},
		{"3.00", vat.BandReduced},
		{"2.60", vat.BandSpecial},
		{"0.10", vat.BandSpecial},
		{"0.00", vat.BandExempt},
	}
	for _, tc := range cases {
		got := vat.Band(decimal.RequireFromString(tc.rate))
		assert.Equal(t, tc.want, got, "tasa %s", tc.rate)
	}
}
