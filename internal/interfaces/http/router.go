package http

import (
	"github.com/gofiber/fiber/v2"
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
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	CatalogUC     *catalog.UseCase
	Ledger        *ledger.Engine
	SalesUC       *sales.UseCase
	PurchasingUC  *purchasing.UseCase
	TransferUC    *transfer.UseCase
	CreditNoteUC  *creditnote.UseCase
	CashSessionUC *cashsession.UseCase
	PlatformUC    *platform.UseCase
	ReportsUC     *reports.UseCase
	StorefrontUC  *storefront.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/storefront/:tenant_id/login", authHandler.LoginStorefront)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/users", authHandler.RegisterUser)

	// Catálogo
	productHandler := NewProductHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.CatalogUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)

	// Inventario: ajustes, stock y kardex
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/stock", inventoryHandler.Stock)
	invGroup.Get("/kardex", inventoryHandler.Kardex)

	// Punto de venta
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Post("/:id/payments", saleHandler.CapturePayment)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Compras y recepciones
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	orders := protected.Group("/purchase-orders")
	orders.Post("/", purchasingHandler.CreateOrder)
	orders.Get("/", purchasingHandler.ListOrders)
	orders.Get("/:id", purchasingHandler.GetOrder)
	orders.Post("/:id/send", purchasingHandler.Send)
	orders.Post("/:id/confirm", purchasingHandler.Confirm)
	orders.Post("/:id/cancel", purchasingHandler.Cancel)
	orders.Post("/:id/receipts", purchasingHandler.Receive)
	orders.Get("/:id/receipts", purchasingHandler.ListReceipts)

	// Traslados entre almacenes
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Request)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/reject", transferHandler.Reject)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/execute", transferHandler.Execute)

	// Notas de crédito
	creditNoteHandler := NewCreditNoteHandler(deps.CreditNoteUC)
	notes := protected.Group("/credit-notes")
	notes.Post("/", creditNoteHandler.Create)
	notes.Get("/", creditNoteHandler.List)
	notes.Get("/:id", creditNoteHandler.Get)

	// Sesiones de caja
	cashHandler := NewCashSessionHandler(deps.CashSessionUC)
	cash := protected.Group("/cash-sessions")
	cash.Post("/", cashHandler.Open)
	cash.Get("/", cashHandler.List)
	cash.Get("/:id", cashHandler.Get)
	cash.Get("/:id/summary", cashHandler.Summary)
	cash.Post("/:id/movements", cashHandler.RecordMovement)
	cash.Post("/:id/close", cashHandler.Close)

	// Plataforma (solo superadmin)
	platformHandler := NewPlatformHandler(deps.PlatformUC)
	tenants := protected.Group("/platform/tenants")
	tenants.Post("/", platformHandler.Provision)
	tenants.Get("/", platformHandler.List)
	tenants.Get("/:id", platformHandler.Get)
	tenants.Post("/:id/suspend", platformHandler.Suspend)
	tenants.Post("/:id/reactivate", platformHandler.Reactivate)

	// Autoservicio storefront (scope storefront)
	storefrontHandler := NewStorefrontHandler(deps.StorefrontUC)
	pedidos := protected.Group("/storefront/orders")
	pedidos.Post("/", storefrontHandler.CreateOrder)
	pedidos.Get("/", storefrontHandler.MyOrders)
	pedidos.Get("/:id", storefrontHandler.GetOrder)
	pedidos.Post("/:id/cancel", storefrontHandler.CancelOrder)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.ReportsUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
}
