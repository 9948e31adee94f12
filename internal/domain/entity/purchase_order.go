package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
// Flujo: DRAFT → ORDERED → RECEIVED; CANCELLED alcanzable desde cualquier
// estado no terminal. RECEIVED y CANCELLED son terminales.
const (
	POStatusDraft     = "DRAFT"
	POStatusOrdered   = "ORDERED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// PurchaseOrder cabecera de orden de compra a un proveedor.
// IsBooked marca si ya fue transferida a contabilidad. ReceivedAt se fija
// en la transición a RECEIVED; el IVA soportado se declara por período de
// recepción, no por fecha de la orden.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Date       time.Time
	Status     string
	IsBooked   bool
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []*PurchaseOrderItem
}

// PurchaseOrderItem línea de orden de compra. UnitCost y VatRate se copian
// del producto al momento de crear la orden (histórico, nunca recalculado).
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal // neto, snapshot al ordenar
	VatRate   decimal.Decimal // porcentaje, snapshot al ordenar
}

// TotalNet costo neto de la línea (cantidad × costo unitario).
func (i *PurchaseOrderItem) TotalNet() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitCost)
}

// IsTerminal indica si el estado no admite más transiciones.
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == POStatusReceived || o.Status == POStatusCancelled
}
