package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storekeeper-api/internal/application/analytics"
	"github.com/jhoicas/storekeeper-api/internal/application/auth"
	"github.com/jhoicas/storekeeper-api/internal/application/inventory"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/application/usecase"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/realtime"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	StoreUC     *usecase.StoreUseCase
	StockUC     *inventory.StockUseCase
	ValuationUC *analytics.ValuationUseCase
	Hub         *realtime.Hub
	Limiter     ports.RateLimiter
	Metrics     *metrics.Metrics
	Log         *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	rl := RateLimit(deps.Limiter, deps.Metrics)

	app.Use(RequestID(), RequestLogger(log), MetricsMiddleware(deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público, limitado por IP)
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("auth-handler"))
	api.Post("/auth/register", rl, authHandler.Register)
	api.Post("/auth/login", rl, authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC, log.Component("product-handler"))
	protected.Get("/products", rl, productHandler.List)
	protected.Post("/products", rl, productHandler.Create)
	protected.Get("/products/:id", rl, productHandler.GetByID)
	protected.Patch("/products/:id", rl, productHandler.Update)
	protected.Delete("/products/:id", rl, productHandler.Delete)
	protected.Post("/products/:id/stock", rl, productHandler.UpdateStock)
	protected.Get("/products/:id/history", rl, productHandler.History)

	// Stores
	storeHandler := NewStoreHandler(deps.StoreUC, deps.ValuationUC, log.Component("store-handler"))
	protected.Get("/stores", rl, storeHandler.List)
	protected.Post("/stores", rl, storeHandler.Create)
	protected.Get("/stores/:id", rl, storeHandler.GetByID)
	protected.Patch("/stores/:id", rl, storeHandler.Update)
	protected.Get("/stores/:id/products", rl, storeHandler.Products)
	protected.Get("/stores/:id/inventory-value", rl, storeHandler.InventoryValue)
	protected.Get("/stores/:id/inventory-report", rl, storeHandler.InventoryReport)

	// Websocket de cambios de stock
	if deps.Hub != nil {
		app.Get("/ws", RequireUpgrade(), QueryTokenMiddleware(deps.JWTSecret), StockFeed(deps.Hub))
	}
}
