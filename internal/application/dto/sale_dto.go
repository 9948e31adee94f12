package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem línea del carrito. UnitPriceGross y VatRate son overrides
// opcionales (precio manual para producto "varios"); nil toma el catálogo.
type CheckoutItem struct {
	ProductID      string           `json:"product_id"`
	Quantity       int64            `json:"quantity"`
	UnitPriceGross *decimal.Decimal `json:"unit_price_gross"`
	VatRate        *decimal.Decimal `json:"vat_rate"`
}

// CheckoutRequest carrito del POS.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"payment_method"` // cash, card, other
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPriceGross decimal.Decimal `json:"unit_price_gross"`
	VatRate        decimal.Decimal `json:"vat_rate"`
	TotalGross     decimal.Decimal `json:"total_gross"`
}

// SaleResponse venta con totales derivados (re-suma completa, nunca
// incremental).
type SaleResponse struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Channel       string             `json:"channel"`
	ExternalRef   string             `json:"external_ref,omitempty"`
	TotalGross    decimal.Decimal    `json:"total_gross"`
	TotalNet      decimal.Decimal    `json:"total_net"`
	TotalTax      decimal.Decimal    `json:"total_tax"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ManualReversalNote instrucción accionable tras un reembolso: qué
// referencia externa y monto deben revertirse a mano en el procesador de
// pagos. El sistema nunca llama al procesador.
type ManualReversalNote struct {
	ExternalRef string          `json:"external_ref,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Instruction string          `json:"instruction"`
}

// RefundResponse resultado del reembolso.
type RefundResponse struct {
	SaleID          string              `json:"sale_id"`
	Status          string              `json:"status"`
	AlreadyRefunded bool                `json:"already_refunded"`
	ManualReversal  *ManualReversalNote `json:"manual_reversal,omitempty"`
}
