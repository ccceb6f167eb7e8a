package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/almacen-pro/almacen-api/internal/application/auth"
	"github.com/almacen-pro/almacen-api/internal/application/inventory"
	"github.com/almacen-pro/almacen-api/internal/application/purchase"
	"github.com/almacen-pro/almacen-api/internal/application/report"
	inframail "github.com/almacen-pro/almacen-api/internal/infrastructure/mail"
	infrapdf "github.com/almacen-pro/almacen-api/internal/infrastructure/pdf"
	"github.com/almacen-pro/almacen-api/internal/infrastructure/sheets"
	httpRouter "github.com/almacen-pro/almacen-api/internal/interfaces/http"
	"github.com/almacen-pro/almacen-api/pkg/config"
	"github.com/almacen-pro/almacen-api/pkg/logger"
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
		Str("book", cfg.Book.Path).
		Msg("iniciando aplicación")

	book, err := sheets.Open(cfg.Book.Path, log.Component("sheets"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir el libro de datos")
	}
	defer book.Close()
	if err := sheets.Bootstrap(book); err != nil {
		log.Fatal().Err(err).Msg("preparar las hojas del libro")
	}

	itemRepo := sheets.NewItemRepository(book)
	movementRepo := sheets.NewMovementRepository(book)
	lotRepo := sheets.NewLotRepository(book)
	bulkRepo := sheets.NewBulkStockRepository(book)
	requestRepo := sheets.NewRequestRepository(book)
	draftRepo := sheets.NewDraftRepository(book)
	providerRepo := sheets.NewProviderRepository(book)
	tokenRepo := sheets.NewTokenRepository(book)
	directoryRepo := sheets.NewDirectoryRepository(book)

	mailer := inframail.NewGomailMailer(inframail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log.Component("mail"))

	authUC := auth.NewAuthUseCase(tokenRepo, directoryRepo, mailer, auth.Config{
		JWTSecret:  cfg.Auth.JWTSecret,
		JWTIssuer:  cfg.Auth.JWTIssuer,
		SessionMin: cfg.Auth.SessionMin,
		TokenTTL:   time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
		BaseURL:    cfg.Auth.BaseURL,
	}, log.Component("auth"))

	stockUC := inventory.NewStockUseCase(itemRepo, movementRepo, lotRepo, bulkRepo, log.Component("inventory"))

	pdfGenerator := infrapdf.NewMarotoOrderGenerator()
	purchaseUC := purchase.NewPurchaseUseCase(
		requestRepo, draftRepo, providerRepo, mailer, pdfGenerator,
		purchase.Config{
			ApproverEmail: cfg.Buyer.ApproverEmail,
			AdminEmail:    cfg.Buyer.AdminEmail,
			BaseURL:       cfg.Auth.BaseURL,
		}, log.Component("purchase"))

	reportUC := report.NewReportUseCase(itemRepo, movementRepo, lotRepo, bulkRepo, log.Component("report"))

	// Barrido diario de tokens vencidos en segundo plano.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go authUC.RunSweeper(sweepCtx, time.Duration(cfg.Auth.SweepEveryHrs)*time.Hour)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		StockUC:    stockUC,
		PurchaseUC: purchaseUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.Auth.JWTSecret,
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
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
