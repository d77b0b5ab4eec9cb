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

	"github.com/sonu0702/cozy-api/internal/application/auth"
	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
	infrapdf "github.com/sonu0702/cozy-api/internal/infrastructure/pdf"
	"github.com/sonu0702/cozy-api/internal/infrastructure/postgres"
	httpRouter "github.com/sonu0702/cozy-api/internal/interfaces/http"
	"github.com/sonu0702/cozy-api/pkg/config"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema migration")
	}

	userRepo := postgres.NewUserRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	edgeRepo := postgres.NewUserShopRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tenancyUC := tenancy.NewUseCase(txRunner, userRepo, shopRepo, edgeRepo, log)
	invoiceUC := billing.NewUseCase(txRunner, tenancyUC, shopRepo, invoiceRepo, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceUC, pdfGenerator, log)
	productUC := usecase.NewProductUseCase(txRunner, tenancyUC, productRepo, log)
	analyticsUC := usecase.NewAnalyticsUseCase(tenancyUC, analyticsRepo)
	authUC := auth.NewUseCase(userRepo, tenancyUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "cozy-api",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TenancyUC:   tenancyUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		ProductUC:   productUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
