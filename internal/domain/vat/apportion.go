// Package vat implementa la aritmética bruto/neto del IVA suizo (servicio
// de dominio puro, sin dependencias de infraestructura).
//
// Los porcentajes viajan siempre como tasa porcentual (8.10, no 0.081),
// copiados en cada línea al momento de la transacción. La reconstrucción
// neto/impuesto parte del bruto almacenado:
//
//	neto     = bruto / (1 + tasa/100)
//	impuesto = bruto − neto
package vat

import "github.com/shopspring/decimal"

// Bandas de tasa según el esquema de la declaración nacional de IVA.
const (
	BandNormal  = "normal"  // ≥ 7%
	BandReduced = "reduced" // 3% – 7%
	BandSpecial = "special" // > 0% – 3%
	BandExempt  = "exempt"  // 0%
)

var (
	hundred    = decimal.NewFromInt(100)
	bandNormal = decimal.NewFromInt(7)
	bandReduce = decimal.NewFromInt(3)
)

// Apportion descompone un importe bruto en neto e impuesto según la tasa
// porcentual. Tasa cero o negativa devuelve el bruto íntegro como neto.
func Apportion(gross, ratePercent decimal.Decimal) (net, tax decimal.Decimal) {
	if ratePercent.LessThanOrEqual(decimal.Zero) {
		return gross, decimal.Zero
	}
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	net = gross.DivRound(divisor, 4)
	tax = gross.Sub(net)
	return net, tax
}

// Band clasifica una tasa porcentual en su banda de declaración.
func Band(ratePercent decimal.Decimal) string {
	switch {
	case ratePercent.GreaterThanOrEqual(bandNormal):
		return BandNormal
	case ratePercent.GreaterThanOrEqual(bandReduce):
		return BandReduced
	case ratePercent.GreaterThan(decimal.Zero):
		return BandSpecial
	default:
		return BandExempt
	}
}
