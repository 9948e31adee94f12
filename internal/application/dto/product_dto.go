package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. SKU y EAN son opcionales: vacíos se
// generan (prefijo de categoría + sufijo para SKU, EAN-13 interno aleatorio).
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	SKU          string          `json:"sku"`
	EAN          string          `json:"ean"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	Unit         string          `json:"unit"` // PCS, KG, L
	TrackStock   *bool           `json:"track_stock"` // nil = true
	InitialStock int64           `json:"initial_stock"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalesPrice   decimal.Decimal `json:"sales_price"`
	VatRateID    string          `json:"vat_rate_id"`
}

// UpdateProductRequest edición de producto. Stock y costo promedio no se
// editan aquí: el primero es del ledger, el segundo del recibo de compras.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SupplierID  string           `json:"supplier_id"`
	Size        string           `json:"size"`
	Color       string           `json:"color"`
	Unit        string           `json:"unit"`
	SalesPrice  *decimal.Decimal `json:"sales_price"`
	VatRateID   string           `json:"vat_rate_id"`
	IsActive    *bool            `json:"is_active"`
}

// ProductResponse representación de producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	EAN           string          `json:"ean"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	Unit          string          `json:"unit"`
	StockQuantity int64           `json:"stock_quantity"`
	TrackStock    bool            `json:"track_stock"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalesPrice    decimal.Decimal `json:"sales_price"`
	VatRateID     string          `json:"vat_rate_id,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SearchResultItem resultado de búsqueda para POS y compras: incluye precio,
// costo, stock, tarifa y proveedor para autoselección en el frontend.
type SearchResultItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	EAN          string          `json:"ean"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

// SearchResponse envoltorio de resultados de búsqueda.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}
