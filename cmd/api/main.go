package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/storekeeper-api/docs"
	"github.com/jhoicas/storekeeper-api/internal/application/analytics"
	"github.com/jhoicas/storekeeper-api/internal/application/auth"
	"github.com/jhoicas/storekeeper-api/internal/application/inventory"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/storekeeper-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/storekeeper-api/internal/infrastructure/pdf"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/realtime"
	infraredis "github.com/jhoicas/storekeeper-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/storekeeper-api/internal/interfaces/http"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

// @title        Storekeeper API
// @version      1.0
// @description  Inventario multi-tienda: usuarios, tiendas, productos y movimientos de stock.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Kafka: el productor crea el writer bajo demanda y lo recrea en cada reintento
	producer := infrakafka.NewProducer(
		infrakafka.NewWriterFactory(cfg.Kafka), cfg.Kafka.MaxRetries, log, m,
	)
	defer producer.Close()

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	var limiter ports.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := infraredis.NewClient(cfg.Redis)
		defer redisClient.Close()
		limiter = infraredis.NewSlidingWindowLimiter(
			redisClient, cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			log,
		)
	}

	authUC := auth.NewAuthUseCase(userRepo, storeRepo, producer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, storeRepo, txnRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo, productRepo)
	stockUC := inventory.NewStockUseCase(txRunner, productRepo, txnRepo, hub, m)
	valuationUC := analytics.NewValuationUseCase(storeRepo, productRepo, userRepo, infrapdf.NewMarotoReportRenderer())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllow,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.DocsPath,
		Path:     "docs",
		Title:    "Storekeeper API",
	}))

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		StoreUC:     storeUC,
		StockUC:     stockUC,
		ValuationUC: valuationUC,
		Hub:         hub,
		Limiter:     limiter,
		Metrics:     m,
		Log:         log,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
