package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stockkeeper/retail-api/internal/application/catalog"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/application/purchasing"
	"github.com/stockkeeper/retail-api/internal/application/reporting"
	"github.com/stockkeeper/retail-api/internal/application/sales"
	"github.com/stockkeeper/retail-api/internal/application/webhook"
)

// RouterDeps casos de uso que consumen los handlers.
type RouterDeps struct {
	Products   *catalog.ProductUseCase
	Catalog    *catalog.CatalogUseCase
	Stock      *ledger.UseCase
	Sales      *sales.UseCase
	Receipts   *sales.ReceiptUseCase
	Purchasing *purchasing.UseCase
	Reporting  *reporting.UseCase
	Webhook    *webhook.UseCase
}

// actorFrom identifica quién ejecuta la operación para el campo created_by
// del ledger y los documentos. Sin autenticación, el POS manda la cabecera.
func actorFrom(c *fiber.Ctx) string {
	if actor := c.Get("X-Actor"); actor != "" {
		return actor
	}
	return "api"
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	products := NewProductHandler(deps.Products)
	catalogH := NewCatalogHandler(deps.Catalog)
	inventory := NewInventoryHandler(deps.Stock, deps.Products)
	salesH := NewSalesHandler(deps.Sales, deps.Receipts)
	purchases := NewPurchaseHandler(deps.Purchasing)
	reports := NewReportHandler(deps.Reporting)
	webhooks := NewWebhookHandler(deps.Webhook)

	api := app.Group("/api")

	p := api.Group("/products")
	p.Post("/", products.Create)
	p.Get("/", products.List)
	p.Get("/search", products.Search)
	p.Get("/:id", products.GetByID)
	p.Put("/:id", products.Update)

	cat := api.Group("/categories")
	cat.Post("/", catalogH.CreateCategory)
	cat.Get("/", catalogH.ListCategories)

	sup := api.Group("/suppliers")
	sup.Post("/", catalogH.CreateSupplier)
	sup.Get("/", catalogH.ListSuppliers)

	vat := api.Group("/vat-rates")
	vat.Post("/", catalogH.CreateVatRate)
	vat.Get("/", catalogH.ListVatRates)

	inv := api.Group("/inventory")
	inv.Post("/corrections", inventory.Correct)
	inv.Get("/movements", inventory.Movements)

	s := api.Group("/sales")
	s.Post("/checkout", salesH.Checkout)
	s.Get("/", salesH.List)
	s.Get("/:id", salesH.GetByID)
	s.Post("/:id/refund", salesH.Refund)
	s.Get("/:id/receipt.pdf", salesH.Receipt)

	po := api.Group("/purchase-orders")
	po.Post("/", purchases.Create)
	po.Get("/", purchases.List)
	po.Get("/:id", purchases.GetByID)
	po.Post("/:id/transition", purchases.Transition)

	rep := api.Group("/reports")
	rep.Get("/vat", reports.VATReturn)
	rep.Get("/vat.pdf", reports.VATReturnPDF)
	rep.Get("/dashboard", reports.Dashboard)

	app.Post("/webhooks/shop/orders-paid", webhooks.OrdersPaid)
}
