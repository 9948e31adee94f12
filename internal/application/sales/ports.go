package sales

import (
	"context"
	"time"

	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// TxRunner transacción que entrega repos de ledger, productos y ventas
// atados a ella. Checkout y reembolso son atómicos: cabecera, líneas y
// movimientos de stock entran o no entran juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
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
