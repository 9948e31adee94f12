package sales

import (
	"context"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// ReceiptPDFGenerator puerto hacia el generador de tickets en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, productNames map[string]string, shopName string) ([]byte, error)
}

// ReceiptUseCase arma el ticket PDF de una venta.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	generator ReceiptPDFGenerator
	shopName  string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	generator ReceiptPDFGenerator,
	shopName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, products: products, generator: generator, shopName: shopName}
}

// ReceiptPDF genera el ticket de la venta con los nombres vigentes de los
// productos (los precios y tarifas salen de los snapshots de la venta).
func (uc *ReceiptUseCase) ReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	names := make(map[string]string, len(sale.Items))
	for _, item := range sale.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			names[item.ProductID] = product.Name
		}
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, names, uc.shopName)
}
