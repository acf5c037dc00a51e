package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/shop-admin/docs"
	"github.com/jhoicas/shop-admin/internal/application/auth"
	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/internal/application/inventory"
	"github.com/jhoicas/shop-admin/internal/application/reporting"
	"github.com/jhoicas/shop-admin/internal/application/sales"
	"github.com/jhoicas/shop-admin/internal/application/settings"
	"github.com/jhoicas/shop-admin/internal/domain/credential"
	infrapdf "github.com/jhoicas/shop-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/shop-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-admin/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/shop-admin/internal/interfaces/http"
	"github.com/jhoicas/shop-admin/pkg/config"
	"github.com/jhoicas/shop-admin/pkg/logger"
)

// @title                       Shop Admin API
// @version                     1.0
// @description                 Inventario, ventas y facturas PDF de tiendas pequeñas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("invoice_renderer", cfg.Invoice.Renderer).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	ledgerRepo := postgres.NewStockTransactionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	hasher := credential.NewHasher(cfg.Security.BcryptCost)

	renderer, err := infrapdf.NewRenderer(cfg.Invoice)
	if err != nil {
		log.Fatal().Err(err).Msg("motor de facturas")
	}
	logoStore, err := storage.NewLocalLogoStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	authUC := auth.NewAuthUseCase(userRepo, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, ledgerRepo, cfg.Inventory.LowStockThreshold)
	salesUC := sales.NewUseCase(txRunner, saleRepo)
	reportUC := reporting.NewUseCase(userRepo, itemRepo, saleRepo, reportRepo, hasher, cfg.Inventory.LowStockThreshold)
	pdfUC := billing.NewPDFUseCase(saleRepo, userRepo, renderer, logoStore)
	logoUC := settings.NewLogoUseCase(userRepo, logoStore, cfg.Upload.MaxBytes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// margen para el multipart del logo
		BodyLimit: int(cfg.Upload.MaxBytes) + 64*1024,
	})
	for _, mw := range httpRouter.CommonMiddleware(log) {
		app.Use(mw)
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shop Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InventoryUC:  inventoryUC,
		SalesUC:      salesUC,
		ReportUC:     reportUC,
		PDFUC:        pdfUC,
		LogoUC:       logoUC,
		JWTSecret:    cfg.JWT.Secret,
		StaticDir:    logoStore.Dir(),
		StaticPrefix: logoStore.PublicPrefix(),
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
