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

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	infrapdf "github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
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

	// Repositorios sobre el pool (las escrituras de emisión usan el TxRunner).
	organizationRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	salePointRepo := postgres.NewSalePointRepository(pool)
	documentTypeRepo := postgres.NewDocumentTypeRepository(pool)
	paymentTermRepo := postgres.NewPaymentTermRepository(pool)
	paymentFormRepo := postgres.NewPaymentFormRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	orderRepo := postgres.NewSaleOrderRepository(pool)
	counterRepo := postgres.NewSalePointDocumentTypeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validator := sales.NewValidator(
		clientRepo, salePointRepo, documentTypeRepo,
		paymentTermRepo, paymentFormRepo, articleRepo, userRepo,
	)
	createOrderUC := sales.NewCreateSaleOrderUseCase(txRunner, validator, log)
	queries := sales.NewSaleOrderQueries(orderRepo)
	voidOrderUC := sales.NewVoidSaleOrderUseCase(orderRepo, log)
	counterUC := sales.NewCounterUseCase(counterRepo, salePointRepo, documentTypeRepo)

	// PDF: comprobante imprimible de la orden emitida
	receiptGenerator := infrapdf.NewReceiptGenerator()
	receiptUC := sales.NewReceiptPDFUseCase(
		orderRepo, counterRepo, organizationRepo, clientRepo, salePointRepo, articleRepo,
		receiptGenerator,
	)

	authUC := auth.NewAuthUseCase(userRepo, organizationRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CreateOrder: createOrderUC,
		Queries:     queries,
		VoidOrder:   voidOrderUC,
		ReceiptPDF:  receiptUC,
		CounterUC:   counterUC,
		JWTSecret:   cfg.JWT.Secret,
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
