package repository

import "github.com/stockkeeper/retail-api/internal/domain/entity"

// StockMovementRepository puerto del ledger de stock. Solo altas y lecturas:
// los movimientos son inmutables, no existe Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByRef movimientos originados por un documento (venta u orden de compra).
	ListByRef(refKind, refID string) ([]*entity.StockMovement, error)
}
