package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida.
const (
	UnitPiece = "PCS"
	UnitKilo  = "KG"
	UnitLiter = "L"
)

// Product artículo del catálogo. SKU y EAN se generan automáticamente si
// llegan vacíos. CostPrice es neto (promedio ponderado, actualizado al
// recibir compras); SalesPrice es bruto (IVA incluido).
//
// StockQuantity es un caché: debe coincidir siempre con el StockAfter del
// último movimiento del producto. Toda mutación de stock pasa por el ledger
// (application/ledger.Adjust); escribir el campo directo está prohibido.
// TrackStock en false excluye al producto del ledger (servicios, varios).
type Product struct {
	ID            string
	SKU           string
	EAN           string
	Name          string
	Description   string
	CategoryID    string
	SupplierID    string
	Size          string
	Color         string
	Unit          string // PCS, KG, L
	StockQuantity int64
	TrackStock    bool
	CostPrice     decimal.Decimal // neto
	SalesPrice    decimal.Decimal // bruto
	VatRateID     string
	IsActive      bool // archivado en lugar de borrado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
