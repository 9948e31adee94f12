package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, status, payment_method, channel, external_ref, total_gross, total_net, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// external_ref lleva índice único parcial (WHERE external_ref <> ''): la
// idempotencia del webhook descansa en esa restricción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.Date, sale.Status, sale.PaymentMethod, sale.Channel,
		sale.ExternalRef, sale.TotalGross, sale.TotalNet, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		itemQuery := `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price_gross, vat_rate)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPriceGross, item.VatRate,
		); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) loadItems(sale *entity.Sale) error {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price_gross, vat_rate
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, sale.ID)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPriceGross, &item.VatRate); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, &item)
	}
	return rows.Err()
}

func (r *SaleRepo) getOne(query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.Date, &s.Status, &s.PaymentMethod, &s.Channel, &s.ExternalRef,
		&s.TotalGross, &s.TotalNet, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID devuelve la venta con sus líneas (nil si no existe).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByExternalRef busca por referencia de transacción externa (idempotencia del webhook).
func (r *SaleRepo) GetByExternalRef(ref string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE external_ref = $1 AND external_ref <> ''`, ref)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

// List lista ventas paginadas, reciente primero, con sus líneas.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Date, &s.Status, &s.PaymentMethod, &s.Channel, &s.ExternalRef,
			&s.TotalGross, &s.TotalNet, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range sales {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// UpdateStatus escribe el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	query := `UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotals escribe los totales derivados de la venta.
func (r *SaleRepo) UpdateTotals(id string, gross, net decimal.Decimal) error {
	query := `UPDATE sales SET total_gross = $2, total_net = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, gross, net)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
