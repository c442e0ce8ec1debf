package main

import (
	"context"
	"log"

	"github.com/pay2post/pay2post/internal/database"
	router "github.com/pay2post/pay2post/internal/http"
	"github.com/pay2post/pay2post/internal/logger"
	"github.com/pay2post/pay2post/internal/services"
	"github.com/pay2post/pay2post/internal/telegram"
	"github.com/pay2post/pay2post/internal/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	log.Printf("Running server on %s\n", config.endpoint)

	invoiceService := services.NewInvoiceService(
		config.processorEndpoint,
		config.processorAPIKey,
		config.payCurrency,
		config.callbackURL,
	)
	publisherService := services.NewPublisherService(
		telegram.New(config.telegramEndpoint, config.telegramToken),
		config.channelID,
	)
	reconcilerService := services.NewReconcilerService(db, invoiceService, publisherService, config.reconcileInterval)

	// Exactly one reconciliation loop per process; its single-flight cycle
	// is what keeps publishes from racing each other.
	go reconcilerService.Run(ctx)

	utils.HandleTerminationProcess(func() {
		cancel()
		db.Close()
	})

	router.New(
		router.Config{Endpoint: config.endpoint},
		services.NewSessionService(services.NewPricingService()),
		services.NewOrderService(db, invoiceService),
		services.NewJWTService(config.authSecretKey),
	).Run()
}
