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

	"github.com/venuehub/comanda-api/internal/application/auth"
	"github.com/venuehub/comanda-api/internal/application/cash"
	"github.com/venuehub/comanda-api/internal/application/customer"
	"github.com/venuehub/comanda-api/internal/application/tab"
	infrapdf "github.com/venuehub/comanda-api/internal/infrastructure/pdf"
	"github.com/venuehub/comanda-api/internal/infrastructure/postgres"
	httpRouter "github.com/venuehub/comanda-api/internal/interfaces/http"
	"github.com/venuehub/comanda-api/pkg/config"
	"github.com/venuehub/comanda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("itemized_split", cfg.Features.ItemizedSplit).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las variantes transaccionales las construye TxRunner)
	identifierRepo := postgres.NewIdentifierRepository(pool)
	tabRepo := postgres.NewTabRepository(pool)
	itemRepo := postgres.NewTabItemRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	registerRepo := postgres.NewCashRegisterRepository(pool)
	paymentRepo := postgres.NewTabPaymentRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	openTabUC := tab.NewOpenTabUseCase(identifierRepo, tabRepo)
	addItemUC := tab.NewAddItemUseCase(tabRepo, itemRepo, bookingRepo)
	setParticipantsUC := tab.NewSetParticipantsUseCase(tabRepo, itemRepo, txRunner, cfg.Features.ItemizedSplit)
	settleTabUC := tab.NewSettleTabUseCase(tabRepo, txRunner)
	tabQueryUC := tab.NewQueryUseCase(tabRepo, itemRepo, participantRepo)
	receiptUC := tab.NewReceiptUseCase(
		tabRepo, itemRepo, participantRepo, paymentRepo, customerRepo,
		infrapdf.NewMarotoReceiptGenerator(),
	)
	cashUC := cash.NewRegisterUseCase(registerRepo, paymentRepo, txRunner)
	customerUC := customer.NewUseCase(customerRepo, txnRepo, txRunner)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
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
		Title:    "Comanda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OpenTabUC:         openTabUC,
		AddItemUC:         addItemUC,
		SetParticipantsUC: setParticipantsUC,
		SettleTabUC:       settleTabUC,
		TabQueryUC:        tabQueryUC,
		ReceiptUC:         receiptUC,
		CashUC:            cashUC,
		CustomerUC:        customerUC,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
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
