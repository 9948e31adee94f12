package entity

import "time"

// Supplier proveedor de mercancía. Referenciado por productos y órdenes de compra.
type Supplier struct {
	ID            string
	Name          string
	Website       string
	Email         string
	ContactPerson string
	CreatedAt     time.Time
}
