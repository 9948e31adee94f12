package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stockkeeper/retail-api/internal/application/catalog"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/application/purchasing"
	"github.com/stockkeeper/retail-api/internal/application/reporting"
	"github.com/stockkeeper/retail-api/internal/application/sales"
	"github.com/stockkeeper/retail-api/internal/application/webhook"
	infrapdf "github.com/stockkeeper/retail-api/internal/infrastructure/pdf"
	"github.com/stockkeeper/retail-api/internal/infrastructure/postgres"
	httpRouter "github.com/stockkeeper/retail-api/internal/interfaces/http"
	"github.com/stockkeeper/retail-api/pkg/config"
	"github.com/stockkeeper/retail-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	vatRateRepo := postgres.NewVatRateRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := ledger.NewUseCase(txRunner)
	productUC := catalog.NewProductUseCase(
		productRepo, categoryRepo, supplierRepo, vatRateRepo,
		movementRepo, stockUC, cfg.Catalog.EANPrefix,
	)
	catalogUC := catalog.NewCatalogUseCase(categoryRepo, supplierRepo, vatRateRepo)
	salesUC := sales.NewUseCase(txRunner, stockUC, saleRepo, vatRateRepo)
	receiptUC := sales.NewReceiptUseCase(
		saleRepo, productRepo, infrapdf.NewReceiptGenerator(), cfg.App.Name,
	)
	purchasingUC := purchasing.NewUseCase(
		txRunner, stockUC, orderRepo, productRepo, supplierRepo, vatRateRepo,
	)
	reportingUC := reporting.NewUseCase(
		reportRepo, infrapdf.NewVATReportGenerator(), cfg.Catalog.LowStockThreshold,
	)
	webhookUC := webhook.NewUseCase(salesUC, saleRepo, productRepo, cfg.Webhook.SharedSecret)
	if cfg.Webhook.SharedSecret == "" {
		log.Warn().Msg("SHOP_WEBHOOK_SECRET vacío: el webhook rechazará toda entrega")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockKeeper API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:   productUC,
		Catalog:    catalogUC,
		Stock:      stockUC,
		Sales:      salesUC,
		Receipts:   receiptUC,
		Purchasing: purchasingUC,
		Reporting:  reportingUC,
		Webhook:    webhookUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
