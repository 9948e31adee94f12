package entity

import "time"

// Tipos de movimiento del ledger de stock.
const (
	MovementKindInitial    = "INITIAL"
	MovementKindPurchase   = "PURCHASE"
	MovementKindSale       = "SALE"
	MovementKindCorrection = "CORRECTION"
	MovementKindReturn     = "RETURN"
	MovementKindDamage     = "DAMAGE"
)

// Referencias posibles de un movimiento al documento que lo originó.
// Unión etiquetada: RefKind + RefID, vacíos cuando el movimiento es autónomo
// (corrección manual, stock inicial).
const (
	MovementRefSale          = "sale"
	MovementRefPurchaseOrder = "purchase_order"
)

// StockMovement fila inmutable del ledger: delta con signo y saldo resultante.
// Nunca se actualiza ni se borra después de creada; solo cae en cascada con
// su producto. La referencia al documento es de consulta, sin cascada.
type StockMovement struct {
	ID         string
	ProductID  string
	Kind       string // INITIAL, PURCHASE, SALE, CORRECTION, RETURN, DAMAGE
	Quantity   int64  // delta con signo: positivo entrada, negativo salida
	StockAfter int64  // saldo del producto después de aplicar el delta
	RefKind    string // sale | purchase_order | "" (unión etiquetada)
	RefID      string
	Note       string
	CreatedBy  string // actor
	CreatedAt  time.Time
}
