package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest alta de categoría. El prefijo de SKU se asigna solo.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKUPrefix int       `json:"sku_prefix"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	Website       string `json:"website"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person"`
}

// SupplierResponse representación de proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Website       string    `json:"website,omitempty"`
	Email         string    `json:"email,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateVatRateRequest alta de tarifa de IVA (porcentaje, ej. 8.10).
type CreateVatRateRequest struct {
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
}

// VatRateResponse representación de tarifa de IVA.
type VatRateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
	CreatedAt time.Time       `json:"created_at"`
}
