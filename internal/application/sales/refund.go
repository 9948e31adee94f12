package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// Refund reversa una venta completa: marca REFUNDED y asienta un movimiento
// RETURN por cada línea. Idempotente bajo bloqueo de fila: la segunda
// llamada encuentra la venta ya reembolsada y no vuelve a mover stock.
// El cobro externo nunca se revierte aquí; se devuelve una instrucción de
// reversión manual cuando aplica.
func (uc *UseCase) Refund(ctx context.Context, actor, saleID string) (*dto.RefundResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	out := &dto.RefundResponse{SaleID: saleID}
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		if sale.Status == entity.SaleStatusRefunded {
			// Reintento (doble click, reenvío): nada que hacer
			out.Status = sale.Status
			out.AlreadyRefunded = true
			return nil
		}

		now := time.Now()
		for _, item := range sale.Items {
			if _, err := uc.stock.AdjustInTx(movRepo, productRepo, ledger.AdjustInput{
				ProductID: item.ProductID,
				Delta:     item.Quantity,
				Kind:      entity.MovementKindReturn,
				Actor:     actor,
				RefKind:   entity.MovementRefSale,
				RefID:     sale.ID,
			}, now); err != nil {
				return err
			}
		}

		if err := saleRepo.UpdateStatus(sale.ID, entity.SaleStatusRefunded); err != nil {
			return err
		}
		out.Status = entity.SaleStatusRefunded
		out.ManualReversal = reversalNote(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// reversalNote arma la instrucción de reversión manual del cobro. Solo
// aplica cuando el dinero está en manos de un tercero (pedido web o pago
// con tarjeta); el efectivo se devuelve en caja sin más trámite.
func reversalNote(sale *entity.Sale) *dto.ManualReversalNote {
	if sale.ExternalRef == "" && sale.PaymentMethod != entity.PaymentCard {
		return nil
	}
	note := &dto.ManualReversalNote{
		ExternalRef: sale.ExternalRef,
		Amount:      sale.TotalGross,
	}
	if sale.ExternalRef != "" {
		note.Instruction = fmt.Sprintf("revertir manualmente el cobro de la transacción externa %s en la plataforma de pagos", sale.ExternalRef)
	} else {
		note.Instruction = "revertir manualmente el cobro con tarjeta en el terminal de pagos"
	}
	return note
}
