package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, supplier_id, date, status, is_booked, received_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.Date, order.Status, order.IsBooked,
		order.ReceivedAt, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost, vat_rate)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitCost, item.VatRate,
		); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(order *entity.PurchaseOrder) error {
	query := `
		SELECT id, order_id, product_id, quantity, unit_cost, vat_rate
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, order.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitCost, &item.VatRate); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, &item)
	}
	return rows.Err()
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.Date, &o.Status, &o.IsBooked, &o.ReceivedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID devuelve la orden con sus líneas (nil si no existe).
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`
		SELECT id, supplier_id, date, status, is_booked, received_at, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`
		SELECT id, supplier_id, date, status, is_booked, received_at, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// List lista órdenes paginadas, reciente primero, con sus líneas.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, date, status, is_booked, received_at, created_by, created_at, updated_at
		FROM purchase_orders ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Date, &o.Status, &o.IsBooked, &o.ReceivedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus escribe el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBooked marca la orden como contabilizada.
func (r *PurchaseOrderRepo) UpdateBooked(id string, booked bool) error {
	query := `UPDATE purchase_orders SET is_booked = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, booked)
	if err != nil {
		return fmt.Errorf("update order booked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReceived sella la fecha de recepción.
func (r *PurchaseOrderRepo) UpdateReceived(id string, receivedAt time.Time) error {
	query := `UPDATE purchase_orders SET received_at = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, receivedAt)
	if err != nil {
		return fmt.Errorf("update order received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
