package catalog

import (
	"context"

	"github.com/stockkeeper/retail-api/internal/application/ledger"
)

// Ledger puerto hacia el ledger de stock: el alta de producto con stock
// inicial lo registra como movimiento INITIAL en vez de escribir el campo.
type Ledger interface {
	Adjust(ctx context.Context, in ledger.AdjustInput) (ledger.AdjustResult, error)
}
