package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatRate tarifa de IVA del catálogo (ej. "Normal 8.10%", "Reducida 2.60%").
// Rate se expresa en porcentaje (8.10, no 0.081). Las líneas de venta y compra
// copian el porcentaje al momento de la transacción; cambiar la tarifa aquí
// nunca altera documentos históricos.
type VatRate struct {
	ID        string
	Name      string
	Rate      decimal.Decimal // porcentaje, ej. 8.10
	IsDefault bool
	CreatedAt time.Time
}
