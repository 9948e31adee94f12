package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
	"github.com/stockkeeper/retail-api/internal/domain/vat"
)

// UseCase ventas: checkout, consulta y reembolso.
type UseCase struct {
	txRunner TxRunner
	stock    Ledger
	sales    repository.SaleRepository // lecturas fuera de transacción
	vatRates repository.VatRateRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	stock Ledger,
	sales repository.SaleRepository,
	vatRates repository.VatRateRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, stock: stock, sales: sales, vatRates: vatRates}
}

// Checkout cierra un carrito del POS: crea la venta con snapshots de precio
// y tarifa, debita stock por línea y recalcula totales. Todo o nada.
func (uc *UseCase) Checkout(ctx context.Context, actor string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	return uc.CheckoutChannel(ctx, actor, entity.ChannelPOS, "", in)
}

// CheckoutChannel variante con canal y referencia externa explícitos; la usa
// el webhook para registrar pedidos web con su id de transacción.
func (uc *UseCase) CheckoutChannel(ctx context.Context, actor, channel, externalRef string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	payment := in.PaymentMethod
	if payment == "" {
		payment = entity.PaymentCash
	}
	switch payment {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentOther:
	default:
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		now := time.Now()
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			Date:          now,
			Status:        entity.SaleStatusCompleted,
			PaymentMethod: payment,
			Channel:       channel,
			ExternalRef:   externalRef,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		for _, line := range in.Items {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			// Snapshot de precio y tarifa al momento de la venta; los
			// overrides del carrito (precio manual) tienen prioridad.
			price := product.SalesPrice
			if line.UnitPriceGross != nil {
				price = *line.UnitPriceGross
			}
			rate, err := uc.rateFor(product, line.VatRate)
			if err != nil {
				return err
			}

			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:             uuid.New().String(),
				SaleID:         sale.ID,
				ProductID:      product.ID,
				Quantity:       line.Quantity,
				UnitPriceGross: price,
				VatRate:        rate,
			})
		}

		gross, net, _ := CalculateTotals(sale.Items)
		sale.TotalGross = gross
		sale.TotalNet = net

		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// Débito de stock por línea. Incondicional: el stock puede quedar
		// negativo (la venta ya ocurrió en el mundo físico).
		for _, item := range sale.Items {
			if _, err := uc.stock.AdjustInTx(movRepo, productRepo, ledger.AdjustInput{
				ProductID: item.ProductID,
				Delta:     -item.Quantity,
				Kind:      entity.MovementKindSale,
				Actor:     actor,
				RefKind:   entity.MovementRefSale,
				RefID:     sale.ID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toSaleResponse(sale)
	return &out, nil
}

// rateFor resuelve el porcentaje de IVA de la línea: override explícito o
// tarifa del producto (cero si el producto no tiene tarifa asignada).
func (uc *UseCase) rateFor(product *entity.Product, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if override.IsNegative() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return *override, nil
	}
	if product.VatRateID == "" {
		return decimal.Zero, nil
	}
	rate, err := uc.vatRates.GetByID(product.VatRateID)
	if err != nil {
		return decimal.Zero, err
	}
	if rate == nil {
		return decimal.Zero, nil
	}
	return rate.Rate, nil
}

// GetByID devuelve la venta con sus líneas (nil si no existe).
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil || sale == nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// List listado paginado de ventas.
func (uc *UseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.sales.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range sales {
		out.Items = append(out.Items, toSaleResponse(s))
	}
	return out, nil
}

// CalculateTotals re-suma las líneas completas: bruto, neto y IVA. Nunca se
// mantiene incremental; recalcular desde cero evita derivas por redondeo.
func CalculateTotals(items []*entity.SaleItem) (gross, net, tax decimal.Decimal) {
	for _, item := range items {
		lineGross := item.TotalGross()
		lineNet, lineTax := vat.Apportion(lineGross, item.VatRate)
		gross = gross.Add(lineGross)
		net = net.Add(lineNet)
		tax = tax.Add(lineTax)
	}
	return gross, net, tax
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	gross, net, tax := CalculateTotals(s.Items)
	out := dto.SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		Channel:       s.Channel,
		ExternalRef:   s.ExternalRef,
		TotalGross:    gross,
		TotalNet:      net,
		TotalTax:      tax,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceGross: item.UnitPriceGross,
			VatRate:        item.VatRate,
			TotalGross:     item.TotalGross(),
		})
	}
	return out
}
