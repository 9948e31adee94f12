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
	"github.com/stockkeeper/retail-api/pkg/textfold"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, ean, name, description, category_id, supplier_id, size, color, unit, stock_quantity, track_stock, cost_price, sales_price, vat_rate_id, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.EAN, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID,
		&p.Size, &p.Color, &p.Unit, &p.StockQuantity, &p.TrackStock,
		&p.CostPrice, &p.SalesPrice, &p.VatRateID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `, name_folded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.EAN, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.Size, product.Color, product.Unit,
		product.StockQuantity, product.TrackStock, product.CostPrice, product.SalesPrice,
		product.VatRateID, product.IsActive, product.CreatedAt, product.UpdatedAt,
		textfold.Fold(product.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU (case-insensitive).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(sku) = lower($1)`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetByEAN obtiene un producto por código EAN exacto.
func (r *ProductRepo) GetByEAN(ean string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ean = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, ean))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by ean: %w", err)
	}
	return p, nil
}

// List lista productos paginados por fecha de alta descendente.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update edita los campos de catálogo. Nunca toca stock_quantity ni
// cost_price: esos los escriben el ledger y el recibo de compras.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, supplier_id = $4, size = $5, color = $6,
		    unit = $7, sales_price = $8, vat_rate_id = $9, is_active = $10, updated_at = $11,
		    name_folded = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SupplierID, product.Size,
		product.Color, product.Unit, product.SalesPrice, product.VatRateID,
		product.IsActive, product.UpdatedAt, textfold.Fold(product.Name),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
// sentido sobre un repo atado a una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el caché de cantidad. Uso exclusivo del ledger.
func (r *ProductRepo) UpdateStock(productID string, quantity int64) error {
	query := `UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, productID, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost escribe el costo promedio ponderado. Uso exclusivo del recibo de compras.
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	query := `UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, productID, cost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MaxSKUSuffix devuelve el mayor sufijo numérico entre los SKU de la
// categoría que empiezan con el prefijo dado (0 si no hay ninguno). Se
// filtra por categoría además del prefijo: "120001" empieza con "1" pero
// pertenece al espacio de la categoría 12.
func (r *ProductRepo) MaxSKUSuffix(categoryID, prefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(substring(sku FROM $3)::int), 0)
		FROM products
		WHERE category_id = $1 AND sku LIKE $2 AND substring(sku FROM $3) ~ '^[0-9]+$'`
	// patrón: resto del SKU después del prefijo
	var max int
	err := r.q.QueryRow(context.Background(), query, categoryID, prefix+"%", fmt.Sprintf(`^%s([0-9]+)$`, prefix)).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max sku suffix: %w", err)
	}
	return max, nil
}

// Search busca por EAN exacto, SKU (case-insensitive) o fragmento del nombre
// normalizado. normName llega ya plegado (sin diacríticos); la columna
// name_folded guarda el nombre plegado al insertar/editar.
func (r *ProductRepo) Search(query, normName string, limit int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		  AND (ean = $1 OR lower(sku) = lower($1) OR name_folded ILIKE '%' || $2 || '%')
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), sql, query, normName, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
