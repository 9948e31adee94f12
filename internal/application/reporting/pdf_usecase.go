package reporting

import (
	"context"
	"time"

	"github.com/stockkeeper/retail-api/internal/application/dto"
)

// VATPDFGenerator puerto hacia el render PDF de la declaración de IVA.
type VATPDFGenerator interface {
	GenerateVATReportPDF(ctx context.Context, report *dto.VATReturnResponse) ([]byte, error)
}

// VATReturnPDF genera la declaración del período como PDF.
func (uc *UseCase) VATReturnPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	report, err := uc.VATReturn(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateVATReportPDF(ctx, report)
}
