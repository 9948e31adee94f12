package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATBandTotals neto e impuesto acumulados de una banda de tasa.
type VATBandTotals struct {
	Band string          `json:"band"` // normal, reduced, special, exempt
	Net  decimal.Decimal `json:"net"`
	Tax  decimal.Decimal `json:"tax"`
}

// VATReturnResponse declaración del período con el layout del formulario
// nacional: impuesto repercutido por banda, impuesto soportado deducible y
// saldo a pagar.
type VATReturnResponse struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OutputByBand   []VATBandTotals `json:"output_by_band"`
	OutputNet      decimal.Decimal `json:"output_net"`
	OutputTax      decimal.Decimal `json:"output_tax"`
	InputTax       decimal.Decimal `json:"input_tax"` // deducible, solo compras recibidas
	NetTaxPayable  decimal.Decimal `json:"net_tax_payable"`
}

// MonthlyRevenuePoint punto de la serie mensual del dashboard.
type MonthlyRevenuePoint struct {
	Month   string          `json:"month"` // "Jan 2026"
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryCountItem productos por categoría para el gráfico del dashboard.
type CategoryCountItem struct {
	Category string `json:"category"`
	Products int    `json:"products"`
}

// PendingOrderItem orden de compra pendiente (ni recibida ni cancelada).
type PendingOrderItem struct {
	OrderID      string    `json:"order_id"`
	SupplierName string    `json:"supplier_name"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// DashboardResponse KPIs de la página de inicio.
type DashboardResponse struct {
	MonthlyRevenue []MonthlyRevenuePoint `json:"monthly_revenue"`
	Categories     []CategoryCountItem   `json:"categories"`
	LowStock       int                   `json:"low_stock"`
	PendingOrders  []PendingOrderItem    `json:"pending_orders"`
}
