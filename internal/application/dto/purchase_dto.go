package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de la orden. UnitCost nil toma el costo de
// catálogo del producto; la tarifa de IVA siempre se copia del producto.
type PurchaseItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest intake de compra: carrito → orden DRAFT.
type CreatePurchaseOrderRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
}

// TransitionRequest cambio de estado explícito de la orden.
type TransitionRequest struct {
	Status string `json:"status"` // ORDERED, RECEIVED, CANCELLED
}

// PurchaseOrderItemResponse línea de orden en respuestas.
type PurchaseOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	TotalNet  decimal.Decimal `json:"total_net"`
}

// PurchaseOrderResponse orden con líneas.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	SupplierID string                      `json:"supplier_id"`
	Date       time.Time                   `json:"date"`
	Status     string                      `json:"status"`
	IsBooked   bool                        `json:"is_booked"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	CreatedBy  string                      `json:"created_by,omitempty"`
	Items      []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderListResponse listado paginado.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// TransitionResponse resultado de la transición. Booked=true solo en la
// primera entrada a RECEIVED (costos y stock contabilizados); repetirla es
// no-op con Booked=false.
type TransitionResponse struct {
	OrderID   string `json:"order_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Booked    bool   `json:"booked"`
	Movements int    `json:"movements"` // movimientos PURCHASE generados
}
