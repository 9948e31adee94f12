package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura (declaración de IVA y
// dashboard). Agrupa en SQL; la descomposición bruto/neto por banda queda
// en el caso de uso.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// OutputTaxByRate brutos de venta por tasa snapshot en el período. Solo
// ventas COMPLETED: los reembolsos salen de la base imponible.
func (r *ReportRepo) OutputTaxByRate(ctx context.Context, from, to time.Time) ([]repository.RateGross, error) {
	query := `
		SELECT i.vat_rate, SUM(i.quantity * i.unit_price_gross)
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.status = 'COMPLETED' AND s.date >= $1 AND s.date < $2
		GROUP BY i.vat_rate
		ORDER BY i.vat_rate DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("output tax by rate: %w", err)
	}
	defer rows.Close()

	var result []repository.RateGross
	for rows.Next() {
		var rg repository.RateGross
		if err := rows.Scan(&rg.Rate, &rg.Gross); err != nil {
			return nil, fmt.Errorf("scan output tax: %w", err)
		}
		result = append(result, rg)
	}
	return result, rows.Err()
}

// InputTaxByRate netos de líneas de órdenes recibidas en el período
// (impuesto soportado deducible). El período se corta por received_at: una
// orden de junio recibida en julio declara en julio.
func (r *ReportRepo) InputTaxByRate(ctx context.Context, from, to time.Time) ([]repository.RateNet, error) {
	query := `
		SELECT i.vat_rate, SUM(i.quantity * i.unit_cost)
		FROM purchase_order_items i
		JOIN purchase_orders o ON o.id = i.order_id
		WHERE o.status = 'RECEIVED' AND o.received_at >= $1 AND o.received_at < $2
		GROUP BY i.vat_rate
		ORDER BY i.vat_rate DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("input tax by rate: %w", err)
	}
	defer rows.Close()

	var result []repository.RateNet
	for rows.Next() {
		var rn repository.RateNet
		if err := rows.Scan(&rn.Rate, &rn.Net); err != nil {
			return nil, fmt.Errorf("scan input tax: %w", err)
		}
		result = append(result, rn)
	}
	return result, rows.Err()
}

// MonthlyRevenue ingreso bruto por mes calendario de los últimos doce meses.
func (r *ReportRepo) MonthlyRevenue(ctx context.Context) ([]repository.MonthlyRevenue, error) {
	query := `
		SELECT date_trunc('month', date) AS month, SUM(total_gross)
		FROM sales
		WHERE status = 'COMPLETED' AND date >= date_trunc('month', now()) - interval '11 months'
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var result []repository.MonthlyRevenue
	for rows.Next() {
		var mr repository.MonthlyRevenue
		if err := rows.Scan(&mr.Month, &mr.Revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		result = append(result, mr)
	}
	return result, rows.Err()
}

// ProductsPerCategory productos activos por categoría.
func (r *ReportRepo) ProductsPerCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	query := `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.is_active
		GROUP BY c.id, c.name
		ORDER BY c.sku_prefix`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("products per category: %w", err)
	}
	defer rows.Close()

	var result []repository.CategoryCount
	for rows.Next() {
		var cc repository.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.CategoryName, &cc.Products); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		result = append(result, cc)
	}
	return result, rows.Err()
}

// LowStockCount productos activos con seguimiento de stock bajo el umbral.
func (r *ReportRepo) LowStockCount(ctx context.Context, threshold int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE is_active AND track_stock AND stock_quantity < $1`
	var count int
	if err := r.q.QueryRow(ctx, query, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// PendingPurchaseOrders órdenes ni recibidas ni canceladas, antiguas primero.
func (r *ReportRepo) PendingPurchaseOrders(ctx context.Context, limit int) ([]repository.PendingOrder, error) {
	query := `
		SELECT o.id, s.name, o.status, o.date
		FROM purchase_orders o
		JOIN suppliers s ON s.id = o.supplier_id
		WHERE o.status IN ('DRAFT', 'ORDERED')
		ORDER BY o.date
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pending purchase orders: %w", err)
	}
	defer rows.Close()

	var result []repository.PendingOrder
	for rows.Next() {
		var po repository.PendingOrder
		if err := rows.Scan(&po.OrderID, &po.SupplierName, &po.Status, &po.Date); err != nil {
			return nil, fmt.Errorf("scan pending order: %w", err)
		}
		result = append(result, po)
	}
	return result, rows.Err()
}
