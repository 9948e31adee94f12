package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateGross suma bruta de líneas de venta para una tasa de IVA.
type RateGross struct {
	Rate  decimal.Decimal // porcentaje snapshot de la línea
	Gross decimal.Decimal
}

// RateNet suma neta de líneas de compra recibidas para una tasa de IVA.
type RateNet struct {
	Rate decimal.Decimal
	Net  decimal.Decimal
}

// MonthlyRevenue ingreso bruto por mes calendario.
type MonthlyRevenue struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// CategoryCount productos por categoría.
type CategoryCount struct {
	CategoryID   string
	CategoryName string
	Products     int
}

// PendingOrder orden de compra pendiente para el dashboard.
type PendingOrder struct {
	OrderID      string
	SupplierName string
	Status       string
	Date         time.Time
}

// ReportRepository consultas de agregación de solo lectura (IVA y dashboard).
// Las agregaciones van con ctx porque recorren períodos completos.
type ReportRepository interface {
	// OutputTaxByRate brutos de venta por tasa en el período, solo ventas
	// COMPLETED (los reembolsos salen de la base imponible).
	OutputTaxByRate(ctx context.Context, from, to time.Time) ([]RateGross, error)
	// InputTaxByRate netos de líneas de órdenes RECEIVED en el período,
	// con la tasa almacenada en cada línea (impuesto soportado deducible).
	InputTaxByRate(ctx context.Context, from, to time.Time) ([]RateNet, error)

	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error)
	ProductsPerCategory(ctx context.Context) ([]CategoryCount, error)
	// LowStockCount productos con seguimiento de stock bajo el umbral.
	LowStockCount(ctx context.Context, threshold int64) (int, error)
	PendingPurchaseOrders(ctx context.Context, limit int) ([]PendingOrder, error)
}
