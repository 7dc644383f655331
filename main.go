package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warrapay/config"
	"warrapay/cron"
	"warrapay/handlers"
	"warrapay/middleware"
	"warrapay/models"
	"warrapay/routes"
	"warrapay/services/booking"
	"warrapay/services/payment"
	"warrapay/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	stripe.Key = config.AppConfig.StripeSecretKey

	catalog := models.PriceCatalog{
		{Method: models.MethodPrivate, Plan: models.Plan30Min}: {PriceID: config.AppConfig.PricePrivate30},
		{Method: models.MethodPrivate, Plan: models.Plan60Min}: {PriceID: config.AppConfig.PricePrivate60},
		{Method: models.MethodZoom, Plan: models.Plan30Min}:    {PriceID: config.AppConfig.PriceZoom30},
		{Method: models.MethodZoom, Plan: models.Plan60Min}:    {PriceID: config.AppConfig.PriceZoom60},
	}
	if err := catalog.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid price catalog: %v", err)
	}

	resolver := &booking.DefaultRequestResolver{
		Catalog:      catalog,
		ZoomMethodID: config.AppConfig.ZoomMethodID,
	}
	gateway := payment.NewStripeGateway(logger)

	// Redis-backed pieces are optional: without an address there is no
	// session-lookup cache and no trial reminder queue.
	var (
		reminderClient *asynq.Client
		reminderWorker *asynq.Server
	)
	if config.AppConfig.RedisAddr != "" {
		utils.InitCache()
		reminderClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		})
		reminderWorker = cron.InitTrialReminderWorker(logger)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	var reminders handlers.ReminderEnqueuer
	if reminderClient != nil {
		reminders = reminderClient
	}
	bookingHandler := handlers.NewBookingHandler(resolver, gateway, utils.GetCacheClient(), reminders, logger, config.AppConfig.BaseURL)

	routes.RegisterRoutes(router, bookingHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		reminderClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
