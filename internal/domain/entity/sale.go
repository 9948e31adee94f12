package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusRefunded  = "REFUNDED"
)

// Métodos de pago.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentOther = "other"
)

// Canales de venta.
const (
	ChannelPOS = "pos"
	ChannelWeb = "web"
)

// Sale cabecera de venta (ticket POS o pedido web).
// ExternalRef guarda el id de transacción de la plataforma externa cuando la
// venta entra por webhook; su unicidad es la clave de idempotencia.
// Los totales son caché derivado: siempre se recalculan sumando las líneas
// vigentes (CalculateTotals), nunca se mantienen incrementalmente.
type Sale struct {
	ID            string
	Date          time.Time
	Status        string
	PaymentMethod string // cash, card, other
	Channel       string // pos, web
	ExternalRef   string // id de transacción externa (webhook), único
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem línea de venta. UnitPriceGross y VatRate se copian al insertar
// (precio de catálogo salvo override explícito) y no cambian después.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	Quantity       int64
	UnitPriceGross decimal.Decimal // bruto, snapshot al vender
	VatRate        decimal.Decimal // porcentaje, snapshot al vender
}

// TotalGross precio bruto de la línea (cantidad × precio unitario bruto).
func (i *SaleItem) TotalGross() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPriceGross)
}
