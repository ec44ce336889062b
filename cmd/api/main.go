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
	"github.com/jhoicas/Tpv-api/internal/application/auth"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
	"github.com/jhoicas/Tpv-api/internal/domain/cart"
	"github.com/jhoicas/Tpv-api/internal/infrastructure/facturae"
	infrapdf "github.com/jhoicas/Tpv-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tpv-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tpv-api/internal/interfaces/http"
	"github.com/jhoicas/Tpv-api/pkg/config"
	"github.com/jhoicas/Tpv-api/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	cartUC := usecase.NewCartUseCase(cart.NewRegistry(cfg.TPV.MaxQuantity), categoryRepo)
	checkoutUC := usecase.NewCheckoutUseCase(orderRepo, log)
	reportUC := usecase.NewReportUseCase(
		orderRepo,
		adjustmentRepo,
		usecase.FlatLossValuator(cfg.TPV.LossPerUnit),
		cfg.TPV.TopProducts,
		log,
	)

	facturaeBuilder := facturae.NewBuilder(facturae.SellerParty{
		TaxID:         cfg.Facturae.TaxID,
		CorporateName: cfg.Facturae.CorporateName,
		Address:       cfg.Facturae.Address,
		PostCode:      cfg.Facturae.PostCode,
		Town:          cfg.Facturae.Town,
		Province:      cfg.Facturae.Province,
	})
	orderUC := usecase.NewOrderUseCase(orderRepo, facturaeBuilder)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	adjustmentUC := usecase.NewAdjustmentUseCase(adjustmentRepo)

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
		Title:    "TPV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CartUC:       cartUC,
		CheckoutUC:   checkoutUC,
		ReportUC:     reportUC,
		OrderUC:      orderUC,
		CategoryUC:   categoryUC,
		AdjustmentUC: adjustmentUC,
		ReportPDF:    infrapdf.NewReportGenerator(),
		JWTSecret:    cfg.JWT.Secret,
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
