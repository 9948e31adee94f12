package dto

import "time"

// CorrectionRequest corrección de inventario (stock take): el operador
// cuenta físico y el sistema sintetiza el movimiento por la diferencia.
type CorrectionRequest struct {
	ProductID  string `json:"product_id"`
	CountedQty int64  `json:"counted_qty"`
	Reason     string `json:"reason"`
}

// CorrectionResponse resultado de la corrección.
type CorrectionResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	OldStock    int64  `json:"old_stock"`
	NewStock    int64  `json:"new_stock"`
	Diff        int64  `json:"diff"`
	Applied     bool   `json:"applied"` // false: sin diferencia o producto sin seguimiento
}

// MovementResponse fila del ledger en respuestas.
type MovementResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Kind       string    `json:"kind"`
	Quantity   int64     `json:"quantity"`
	StockAfter int64     `json:"stock_after"`
	RefKind    string    `json:"ref_kind,omitempty"`
	RefID      string    `json:"ref_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MovementListResponse historial de movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
