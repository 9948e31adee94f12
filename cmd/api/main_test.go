package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────
// Documento OpenAPI servido en /docs
// ─────────────────────────────────────────────────────────────

// El middleware de swagger hace os.Stat del archivo al arrancar y entra en
// pánico si falta, así que el JSON generado va versionado junto al código.
func TestSwaggerJSON_ExisteYEsValido(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe estar versionado")

	var doc struct {
		Swagger string `json:"swagger"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "StockKeeper API", doc.Info.Title)

	for _, ruta := range []string{
		"/api/products",
		"/api/products/search",
		"/api/sales/checkout",
		"/api/sales/{id}/refund",
		"/api/purchase-orders/{id}/transition",
		"/api/inventory/corrections",
		"/api/reports/vat",
		"/webhooks/shop/orders-paid",
	} {
		assert.Contains(t, doc.Paths, ruta)
	}

	assert.Contains(t, doc.Definitions, "dto.ErrorResponse")
	assert.Contains(t, doc.Definitions, "dto.PurchaseOrderResponse")
}
