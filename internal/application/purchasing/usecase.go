package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/inventory"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// UseCase órdenes de compra: alta, consulta y máquina de estados.
type UseCase struct {
	txRunner  TxRunner
	stock     Ledger
	orders    repository.PurchaseOrderRepository // lecturas fuera de transacción
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	vatRates  repository.VatRateRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	stock Ledger,
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	vatRates repository.VatRateRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		stock:     stock,
		orders:    orders,
		products:  products,
		suppliers: suppliers,
		vatRates:  vatRates,
	}
}

// CreateDraft crea una orden en DRAFT con snapshots de costo y tarifa por
// línea. El stock y el costo promedio del producto no se tocan hasta la
// recepción.
func (uc *UseCase) CreateDraft(ctx context.Context, actor string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Date:       now,
		Status:     entity.POStatusDraft,
		CreatedBy:  actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}

		// Snapshot: costo de catálogo salvo override, tarifa del producto
		cost := product.CostPrice
		if line.UnitCost != nil {
			if line.UnitCost.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			cost = *line.UnitCost
		}
		rate := decimal.Zero
		if product.VatRateID != "" {
			if vr, err := uc.vatRates.GetByID(product.VatRateID); err != nil {
				return nil, err
			} else if vr != nil {
				rate = vr.Rate
			}
		}

		order.Items = append(order.Items, &entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitCost:  cost,
			VatRate:   rate,
		})
	}

	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// GetByID devuelve la orden con sus líneas (nil si no existe).
func (uc *UseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil || order == nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// List listado paginado de órdenes.
func (uc *UseCase) List(page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orders.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseOrderListResponse{
		Items: make([]dto.PurchaseOrderResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range orders {
		out.Items = append(out.Items, toOrderResponse(o))
	}
	return out, nil
}

// legalTransition tabla de transiciones permitidas de la orden.
func legalTransition(from, to string) bool {
	switch from {
	case entity.POStatusDraft:
		return to == entity.POStatusOrdered || to == entity.POStatusReceived || to == entity.POStatusCancelled
	case entity.POStatusOrdered:
		return to == entity.POStatusReceived || to == entity.POStatusCancelled
	}
	return false
}

// Transition cambia el estado de la orden bajo bloqueo de fila. La primera
// entrada a RECEIVED contabiliza: actualiza el costo promedio ponderado de
// cada producto y asienta un movimiento PURCHASE por línea. Repetir RECEIVED
// es no-op (idempotente); cualquier otra transición ilegal es conflicto.
func (uc *UseCase) Transition(ctx context.Context, actor, orderID string, in dto.TransitionRequest) (*dto.TransitionResponse, error) {
	switch in.Status {
	case entity.POStatusOrdered, entity.POStatusReceived, entity.POStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}

	out := &dto.TransitionResponse{OrderID: orderID, To: in.Status}
	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		out.From = order.Status

		if order.Status == in.Status {
			// Reintento de la misma transición: no-op
			return nil
		}
		if !legalTransition(order.Status, in.Status) {
			return domain.ErrConflict
		}

		if in.Status == entity.POStatusReceived {
			// Sello de recepción: el IVA soportado se declara por este
			// período, no por la fecha de la orden
			if err := orderRepo.UpdateReceived(order.ID, time.Now()); err != nil {
				return err
			}
			if !order.IsBooked {
				movements, err := uc.book(movRepo, productRepo, order, actor)
				if err != nil {
					return err
				}
				if err := orderRepo.UpdateBooked(order.ID, true); err != nil {
					return err
				}
				out.Booked = true
				out.Movements = movements
			}
		}

		return orderRepo.UpdateStatus(order.ID, in.Status)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// book contabiliza la recepción: por cada línea recalcula el costo promedio
// ponderado del producto (con el costo snapshot de la línea) y asienta la
// entrada de stock referenciando la orden.
func (uc *UseCase) book(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	order *entity.PurchaseOrder,
	actor string,
) (int, error) {
	now := time.Now()
	movements := 0
	for _, item := range order.Items {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return movements, err
		}
		if product == nil {
			return movements, domain.ErrNotFound
		}

		newCost := inventory.AverageCost(product.StockQuantity, product.CostPrice, item.Quantity, item.UnitCost)
		if err := productRepo.UpdateCost(product.ID, newCost); err != nil {
			return movements, err
		}

		res, err := uc.stock.AdjustInTx(movRepo, productRepo, ledger.AdjustInput{
			ProductID: item.ProductID,
			Delta:     item.Quantity,
			Kind:      entity.MovementKindPurchase,
			Actor:     actor,
			RefKind:   entity.MovementRefPurchaseOrder,
			RefID:     order.ID,
		}, now)
		if err != nil {
			return movements, err
		}
		if res.Applied {
			movements++
		}
	}
	return movements, nil
}

func toOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	out := dto.PurchaseOrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Date:       o.Date,
		Status:     o.Status,
		IsBooked:   o.IsBooked,
		ReceivedAt: o.ReceivedAt,
		CreatedBy:  o.CreatedBy,
		Items:      make([]dto.PurchaseOrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			VatRate:   item.VatRate,
			TotalNet:  item.TotalNet(),
		})
	}
	return out
}
