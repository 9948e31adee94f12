package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual × CostoActual) + (CantEntrada × CostoEntrada)) / (StockActual + CantEntrada)
// Se invoca al recibir cada orden de compra, antes de sumar el stock.
// Stock actual negativo se trata como cero para no envenenar el promedio.
func AverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	if currentQty < 0 {
		currentQty = 0
	}
	qty := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := qty.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return currentCost
	}
	num := qty.Mul(currentCost).Add(in.Mul(inCost))
	return num.DivRound(sum, 4)
}
