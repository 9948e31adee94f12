// Package pdf genera los documentos imprimibles de la tienda con Maroto v2:
// el ticket de venta y la declaración de IVA del período.
//
// Layout del ticket (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  N° Ticket + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | IVA% | Total             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA / TOTAL (bruto)                        │
//	│  Desglose de IVA por tasa (precios con IVA incluido)        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appsales "github.com/stockkeeper/retail-api/internal/application/sales"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/vat"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 70, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appsales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el ticket y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	productNames map[string]string,
	shopName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket de venta", true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(receiptHeaderRow(sale, shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(receiptTableHeaderRow())
	for _, r := range receiptItemRows(sale, productNames) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(receiptTotalsRow(sale))
	for _, r := range receiptVATBreakdownRows(sale) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// receiptHeaderRow: nombre de la tienda (izq) y número + fecha (der).
func receiptHeaderRow(sale *entity.Sale, shopName string) core.Row {
	status := ""
	if sale.Status == entity.SaleStatusRefunded {
		status = "  (REEMBOLSADA)"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("TICKET DE VENTA"+status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+sale.Date.Format("02.01.2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// receiptTableHeaderRow: cabecera de la tabla de líneas.
func receiptTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// receiptItemRows: una fila por línea, precios brutos con los snapshots de la venta.
func receiptItemRows(sale *entity.Sale, productNames map[string]string) []core.Row {
	result := make([]core.Row, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := productNames[item.ProductID]
		if name == "" {
			name = item.ProductID
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				item.UnitPriceGross.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				item.VatRate.StringFixed(1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				item.TotalGross().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// receiptTotalsRow: neto, IVA y total bruto reconstruidos desde las líneas.
func receiptTotalsRow(sale *entity.Sale) core.Row {
	gross, net, tax := saleTotals(sale)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Neto:"),
			label("IVA:"),
			text.New("TOTAL CHF:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(net.StringFixed(2)),
			value(tax.StringFixed(2)),
			text.New(gross.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// receiptVATBreakdownRows: desglose de IVA por tasa al pie del ticket.
func receiptVATBreakdownRows(sale *entity.Sale) []core.Row {
	type acc struct{ gross, net, tax decimal.Decimal }
	byRate := make(map[string]*acc)
	var order []string
	for _, item := range sale.Items {
		key := item.VatRate.StringFixed(2)
		a, ok := byRate[key]
		if !ok {
			a = &acc{}
			byRate[key] = a
			order = append(order, key)
		}
		lineGross := item.TotalGross()
		lineNet, lineTax := vat.Apportion(lineGross, item.VatRate)
		a.gross = a.gross.Add(lineGross)
		a.net = a.net.Add(lineNet)
		a.tax = a.tax.Add(lineTax)
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Desglose de IVA (precios con IVA incluido)", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 2,
			}),
		)),
	}
	for _, key := range order {
		a := byRate[key]
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s%%:  bruto %s  |  neto %s  |  IVA %s",
				key, a.gross.StringFixed(2), a.net.StringFixed(2), a.tax.StringFixed(2),
			), props.Text{Size: 7, Color: colorGray, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// saleTotals re-suma las líneas del ticket.
func saleTotals(sale *entity.Sale) (gross, net, tax decimal.Decimal) {
	for _, item := range sale.Items {
		lineGross := item.TotalGross()
		lineNet, lineTax := vat.Apportion(lineGross, item.VatRate)
		gross = gross.Add(lineGross)
		net = net.Add(lineNet)
		tax = tax.Add(lineTax)
	}
	return gross, net, tax
}

// shortID primeros 8 caracteres del UUID para el número visible del ticket.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
