package dto

// OrderPaidLineItem línea del pedido externo. El producto se resuelve por
// SKU o EAN; Price es el precio unitario bruto como string decimal (formato
// de la plataforma), vacío toma el catálogo.
type OrderPaidLineItem struct {
	SKU      string `json:"sku"`
	EAN      string `json:"ean"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

// OrderPaidPayload notificación orders-paid de la plataforma de comercio.
// ID es la clave de idempotencia: la misma entrega dos veces produce una
// sola venta.
type OrderPaidPayload struct {
	ID        int64               `json:"id"`
	Currency  string              `json:"currency"`
	LineItems []OrderPaidLineItem `json:"line_items"`
}

// WebhookResponse resultado del procesamiento.
type WebhookResponse struct {
	SaleID    string `json:"sale_id"`
	Duplicate bool   `json:"duplicate"` // entrega repetida, venta ya existente
}
