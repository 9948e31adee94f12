package purchasing

import (
	"context"
	"time"

	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// TxRunner transacción que entrega repos de ledger, productos y órdenes
// atados a ella. La recepción de una orden (costos + stock + estado) es
// atómica.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// Ledger asienta movimientos de stock dentro de la transacción en curso.
type Ledger interface {
	AdjustInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		in ledger.AdjustInput,
		now time.Time,
	) (ledger.AdjustResult, error)
}
