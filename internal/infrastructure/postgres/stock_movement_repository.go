package postgres

import (
	"context"
	"fmt"

	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, stock_after, ref_kind, ref_id, note, created_by, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El ledger es solo-apéndice: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para el ledger.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create asienta un movimiento.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.StockAfter,
		m.RefKind, m.RefID, m.Note, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, reciente primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockAfter,
			&m.RefKind, &m.RefID, &m.Note, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ListByRef movimientos generados por un documento (venta u orden de compra).
func (r *StockMovementRepo) ListByRef(refKind, refID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE ref_kind = $1 AND ref_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, refKind, refID)
	if err != nil {
		return nil, fmt.Errorf("list movements by ref: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockAfter,
			&m.RefKind, &m.RefID, &m.Note, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
