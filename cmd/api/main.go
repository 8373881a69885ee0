package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/permission"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Estoque-api/internal/infrastructure/redis"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.InitTracing(ctx, log, cfg.Telemetry.OTLPEndpoint, cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Cache de permisos opcional: sin REDIS_URL cada verificación lee la DB.
	var snapshotCache permission.SnapshotCache
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		snapshotCache = infraredis.NewSnapshotCache(rdb, cfg.Redis.PermissionCacheTTL)
		log.Info().Dur("ttl", cfg.Redis.PermissionCacheTTL).Msg("cache de permisos en Redis habilitado")
	}

	recorder := telemetry.NewRecorder()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	permissionUC := permission.NewUseCase(userRepo, storeRepo, permRepo, snapshotCache, log.Component("permission"), recorder)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, supplierRepo, movementRepo, log.Component("inventory"), recorder)
	stockUC := inventory.NewStockUseCase(productRepo, movementRepo, log.Component("ledger"), recorder)
	reportUC := report.NewUseCase(postgres.NewReportRepository(pool), storeRepo, stockUC)
	storeUC := usecase.NewStoreUseCase(storeRepo, txRunner, permissionUC)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, movementRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo, permissionUC)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.Telemetry.MetricsEnabled {
		app.Use(httpRouter.Metrics(telemetry.ObserveHTTPRequest, log.Component("http")))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		hctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(hctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		StoreUC:          storeUC,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		UserUC:           userUC,
		RegisterMovement: registerMovementUC,
		Stock:            stockUC,
		Permissions:      permissionUC,
		Reports:          reportUC,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Component("http"),
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del tracing")
	}

	log.Info().Msg("aplicación detenida")
}
