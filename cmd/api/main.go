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

	"github.com/invorya/inventra-api/internal/application/auth"
	"github.com/invorya/inventra-api/internal/application/ledger"
	"github.com/invorya/inventra-api/internal/application/report"
	"github.com/invorya/inventra-api/internal/application/usecase"
	"github.com/invorya/inventra-api/internal/infrastructure/cache"
	"github.com/invorya/inventra-api/internal/infrastructure/migration"
	infrapdf "github.com/invorya/inventra-api/internal/infrastructure/pdf"
	"github.com/invorya/inventra-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/inventra-api/internal/interfaces/http"
	"github.com/invorya/inventra-api/pkg/config"
	"github.com/invorya/inventra-api/pkg/logger"
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

	if err := migration.Up(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	// Denylist de tokens revocados: Redis si está configurado, si no en memoria.
	var denylist auth.TokenDenylist
	if cfg.Redis.Addr != "" {
		redisDenylist, err := cache.NewRedisTokenDenylist(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = redisDenylist.Close() }()
		denylist = redisDenylist
		log.Info().Str("addr", cfg.Redis.Addr).Msg("denylist de tokens en Redis")
	} else {
		denylist = cache.NewInMemoryTokenDenylist()
		log.Warn().Msg("REDIS_ADDR no configurado, denylist de tokens en memoria")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo)
	purchaseUC := ledger.NewPurchaseUseCase(txRunner, productRepo, supplierRepo, purchaseRepo, userRepo, log)
	saleUC := ledger.NewSaleUseCase(txRunner, productRepo, saleRepo, userRepo, log)

	pdfGenerator := infrapdf.NewMarotoSalesReportGenerator()
	reportUC := report.NewUseCase(reportRepo, productRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventra API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
		Denylist:   denylist,
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
