package repository

import (
	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// StockQuantity y CostPrice no se tocan vía Update: el stock lo escribe el
// ledger (UpdateStock bajo GetForUpdate) y el costo el recibo de compras
// (UpdateCost).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetByEAN(ean string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido sobre repos atados a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el caché de cantidad. Uso exclusivo del ledger.
	UpdateStock(productID string, quantity int64) error
	// UpdateCost escribe el costo promedio ponderado. Uso exclusivo del recibo de compras.
	UpdateCost(productID string, cost decimal.Decimal) error

	// MaxSKUSuffix devuelve el mayor sufijo numérico entre los SKU de la
	// categoría que empiezan con el prefijo dado (0 si no hay ninguno).
	// El filtro por categoría es obligatorio: los prefijos "1" y "12"
	// coexisten y el patrón solo no distingue "10001" de "120001".
	MaxSKUSuffix(categoryID, prefix string) (int, error)
	// Search busca por EAN exacto, SKU (case-insensitive) o fragmento
	// normalizado del nombre. normName llega ya plegado (sin diacríticos).
	Search(query, normName string, limit int) ([]*entity.Product, error)
}
