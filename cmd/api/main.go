package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/cashsession"
	"github.com/tiendix/retail-api/internal/application/catalog"
	"github.com/tiendix/retail-api/internal/application/creditnote"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/application/platform"
	"github.com/tiendix/retail-api/internal/application/purchasing"
	"github.com/tiendix/retail-api/internal/application/reports"
	"github.com/tiendix/retail-api/internal/application/sales"
	"github.com/tiendix/retail-api/internal/application/storefront"
	"github.com/tiendix/retail-api/internal/application/transfer"
	"github.com/tiendix/retail-api/internal/infrastructure/postgres"
	infraredis "github.com/tiendix/retail-api/internal/infrastructure/redis"
	httpRouter "github.com/tiendix/retail-api/internal/interfaces/http"
	"github.com/tiendix/retail-api/pkg/config"
	"github.com/tiendix/retail-api/pkg/logger"
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

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()
	blacklist := infraredis.NewTokenBlacklist(redisClient)

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewLedgerMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewGoodsReceiptRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	noteRepo := postgres.NewCreditNoteRepository(pool)
	sessionRepo := postgres.NewCashSessionRepository(pool)
	storefrontOrderRepo := postgres.NewStorefrontOrderRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := ledger.NewEngine(txRunner, productRepo, warehouseRepo, stockRepo, movementRepo)

	defaultTaxRate, err := decimal.NewFromString(cfg.Sales.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Sales.DefaultTaxRate).Msg("SALES_TAX_RATE inválida")
	}

	authUC := auth.NewUseCase(userRepo, customerRepo, tenantRepo, blacklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(productRepo, warehouseRepo, log)
	salesUC := sales.NewUseCase(txRunner, engine, saleRepo, productRepo, sessionRepo, tenantRepo, log)
	purchasingUC := purchasing.NewUseCase(txRunner, engine, orderRepo, receiptRepo, supplierRepo, warehouseRepo, productRepo, tenantRepo, log)
	transferUC := transfer.NewUseCase(txRunner, engine, transferRepo, warehouseRepo, productRepo, log)
	creditNoteUC := creditnote.NewUseCase(txRunner, engine, noteRepo, saleRepo, tenantRepo, log)
	cashSessionUC := cashsession.NewUseCase(txRunner, sessionRepo, saleRepo, log)
	platformUC := platform.NewUseCase(tenantRepo, userRepo, defaultTaxRate, log)
	reportsUC := reports.NewUseCase(reportsRepo)
	storefrontUC := storefront.NewUseCase(storefrontOrderRepo, productRepo, warehouseRepo, tenantRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CatalogUC:     catalogUC,
		Ledger:        engine,
		SalesUC:       salesUC,
		PurchasingUC:  purchasingUC,
		TransferUC:    transferUC,
		CreditNoteUC:  creditNoteUC,
		CashSessionUC: cashSessionUC,
		PlatformUC:    platformUC,
		ReportsUC:     reportsUC,
		StorefrontUC:  storefrontUC,
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
