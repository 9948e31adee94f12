// Package reporting agrega ventas y compras en la declaración de IVA del
// período y en los KPIs del dashboard. Solo lectura.
package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
	"github.com/stockkeeper/retail-api/internal/domain/vat"
)

// orden fijo de bandas en la declaración
var bandOrder = []string{vat.BandNormal, vat.BandReduced, vat.BandSpecial, vat.BandExempt}

// UseCase reportes de IVA y dashboard.
type UseCase struct {
	reports           repository.ReportRepository
	pdf               VATPDFGenerator
	lowStockThreshold int64
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository, pdf VATPDFGenerator, lowStockThreshold int64) *UseCase {
	return &UseCase{reports: reports, pdf: pdf, lowStockThreshold: lowStockThreshold}
}

// VATReturn arma la declaración del período: impuesto repercutido por banda
// (desde brutos de venta), impuesto soportado deducible (desde netos de
// compra recibidos) y saldo a pagar. Los reembolsos no suman: solo ventas
// COMPLETED entran en la base.
func (uc *UseCase) VATReturn(ctx context.Context, from, to time.Time) (*dto.VATReturnResponse, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}

	output, err := uc.reports.OutputTaxByRate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	input, err := uc.reports.InputTaxByRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.VATReturnResponse{From: from, To: to}

	// Repercutido: el bruto almacenado se descompone por la tasa snapshot
	// de cada línea y se acumula en su banda de declaración.
	type bandAcc struct{ net, tax decimal.Decimal }
	byBand := make(map[string]*bandAcc)
	for _, row := range output {
		net, tax := vat.Apportion(row.Gross, row.Rate)
		band := vat.Band(row.Rate)
		acc, ok := byBand[band]
		if !ok {
			acc = &bandAcc{}
			byBand[band] = acc
		}
		acc.net = acc.net.Add(net)
		acc.tax = acc.tax.Add(tax)
		out.OutputNet = out.OutputNet.Add(net)
		out.OutputTax = out.OutputTax.Add(tax)
	}
	for _, band := range bandOrder {
		acc, ok := byBand[band]
		if !ok {
			continue
		}
		out.OutputByBand = append(out.OutputByBand, dto.VATBandTotals{Band: band, Net: acc.net, Tax: acc.tax})
	}

	// Soportado: las líneas de compra guardan neto; el impuesto deducible
	// es neto × tasa directamente.
	for _, row := range input {
		tax := row.Net.Mul(row.Rate).DivRound(decimal.NewFromInt(100), 4)
		out.InputTax = out.InputTax.Add(tax)
	}

	out.NetTaxPayable = out.OutputTax.Sub(out.InputTax)
	return out, nil
}

// Dashboard KPIs de la página de inicio: serie mensual de ingresos,
// productos por categoría, alerta de stock bajo y órdenes pendientes.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	out := &dto.DashboardResponse{}

	revenue, err := uc.reports.MonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	for _, point := range revenue {
		out.MonthlyRevenue = append(out.MonthlyRevenue, dto.MonthlyRevenuePoint{
			Month:   point.Month.Format("Jan 2006"),
			Revenue: point.Revenue,
		})
	}

	categories, err := uc.reports.ProductsPerCategory(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, dto.CategoryCountItem{Category: c.CategoryName, Products: c.Products})
	}

	low, err := uc.reports.LowStockCount(ctx, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	out.LowStock = low

	pending, err := uc.reports.PendingPurchaseOrders(ctx, 10)
	if err != nil {
		return nil, err
	}
	for _, o := range pending {
		out.PendingOrders = append(out.PendingOrders, dto.PendingOrderItem{
			OrderID:      o.OrderID,
			SupplierName: o.SupplierName,
			Status:       o.Status,
			Date:         o.Date,
		})
	}

	return out, nil
}
