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

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/reporting"
	"github.com/stockkeeper/retail-api/internal/domain/vat"
)

var _ reporting.VATPDFGenerator = (*VATReportGenerator)(nil)

// etiquetas de banda en el orden del formulario
var bandLabels = map[string]string{
	vat.BandNormal:  "Tasa normal (≥ 7%)",
	vat.BandReduced: "Tasa reducida (3% – 7%)",
	vat.BandSpecial: "Tasa especial (hasta 3%)",
	vat.BandExempt:  "Exento (0%)",
}

// VATReportGenerator implementa reporting.VATPDFGenerator usando Maroto v2.
type VATReportGenerator struct{}

// NewVATReportGenerator construye el generador.
func NewVATReportGenerator() *VATReportGenerator { return &VATReportGenerator{} }

// GenerateVATReportPDF genera la declaración del período y devuelve sus bytes.
func (g *VATReportGenerator) GenerateVATReportPDF(_ context.Context, report *dto.VATReturnResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Declaración de IVA", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(vatHeaderRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(vatTableHeaderRow())
	for _, r := range vatBandRows(report) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vatSummaryRows(report)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar declaración: %w", err)
	}
	return doc.GetBytes(), nil
}

// vatHeaderRow: título y período declarado.
func vatHeaderRow(report *dto.VATReturnResponse) core.Row {
	period := fmt.Sprintf("Período: %s – %s",
		report.From.Format("02.01.2006"), report.To.Format("02.01.2006"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("DECLARACIÓN DE IVA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
	)
}

// vatTableHeaderRow: cabecera de la tabla de bandas.
func vatTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Banda", 6, align.Left),
		h("Base neta", 3, align.Right),
		h("Impuesto", 3, align.Right),
	)
}

// vatBandRows: una fila por banda con movimiento en el período.
func vatBandRows(report *dto.VATReturnResponse) []core.Row {
	result := make([]core.Row, 0, len(report.OutputByBand))
	for _, band := range report.OutputByBand {
		label := bandLabels[band.Band]
		if label == "" {
			label = band.Band
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(label, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(band.Net.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(band.Tax.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// vatSummaryRows: repercutido, soportado deducible y saldo a pagar.
func vatSummaryRows(report *dto.VATReturnResponse) []core.Row {
	summary := func(label, value string, grand bool) core.Row {
		size := 9.0
		color := colorGray
		style := fontstyle.Normal
		if grand {
			size = 10.5
			color = colorPrimary
			style = fontstyle.Bold
		}
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Right, Color: color, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Color: color, Right: 1,
			})),
		)
	}
	return []core.Row{
		summary("IVA repercutido:", report.OutputTax.StringFixed(2), false),
		summary("IVA soportado deducible:", report.InputTax.StringFixed(2), false),
		summary("SALDO A PAGAR:", report.NetTaxPayable.StringFixed(2), true),
	}
}
