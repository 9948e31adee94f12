package repository

import (
	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	// Create persiste cabecera y líneas.
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas (nil si no existe).
	GetByID(id string) (*entity.Sale, error)
	// GetByExternalRef busca por id de transacción externa (clave de
	// idempotencia del webhook). Nil si no existe.
	GetByExternalRef(ref string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// GetForUpdate bloquea la cabecera para la transición de reembolso.
	GetForUpdate(id string) (*entity.Sale, error)
	UpdateStatus(id, status string) error
	UpdateTotals(id string, gross, net decimal.Decimal) error
}
