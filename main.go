package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	bookingRepoPkg "medibook/database/repository/booking"
	directoryRepoPkg "medibook/database/repository/directory"
	paymentRepoPkg "medibook/database/repository/payment"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/directory"
	"medibook/services/logo"
	"medibook/services/notification"
	"medibook/services/payment"
	"medibook/services/user"
	"medibook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitQueueClient()
	utils.FirebaseInit()

	if err := paymentRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure payment indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	directoryRepo := directoryRepoPkg.NewMongoDirectoryRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// settlement queue.
	scheduler := cron.NewAsynqScheduler()
	settleDelay := time.Duration(config.AppConfig.PaymentSettleDelay) * time.Second

	var verifier payment.Verifier
	if config.AppConfig.PaymentVerifier == "stripe" {
		verifier = &payment.StripeVerifier{}
	} else {
		verifier = &payment.SimulatedVerifier{FailureRate: config.AppConfig.PaymentFailureRate}
	}

	// services.
	paymentService := &payment.DefaultPaymentService{
		Repo:        paymentRepo,
		Scheduler:   scheduler,
		Verifier:    verifier,
		SettleDelay: settleDelay,
		Logger:      logger,
	}

	notificationService := &notification.DefaultNotificationService{
		Users: userRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		PaymentSvc: paymentService,
		NotifySvc:  notificationService,
		Logger:     logger,
	}

	directoryService := &directory.DefaultDirectoryService{
		Repo: directoryRepo,
	}

	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}

	cld, err := cloudinary.NewFromParams(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}
	logoService, err := logo.NewDefaultLogoService(config.AppConfig.GeminiAPIKey, cld, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize logo service: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Payment:   handlers.NewPaymentHandler(paymentService, logger),
		Booking:   handlers.NewBookingHandler(bookingService, logger),
		Directory: handlers.NewDirectoryHandler(directoryService, logger),
		User:      handlers.NewUserHandler(userService, logger),
		Logo:      handlers.NewLogoHandler(logoService, logger),
		UserRepo:  userRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background settlement: the worker consumes scheduled settle tasks and
	// the sweep re-enqueues any pending transaction whose task was lost.
	cron.InitSettlementWorker(paymentService)
	cron.StartReconciliationSweep(
		paymentRepo,
		scheduler,
		settleDelay,
		time.Duration(config.AppConfig.PaymentSweepInterval)*time.Second,
	)

	utils.StartHealthMonitor(
		map[string]utils.RedisPinger{
			"cache": utils.GetCacheClient(),
			"auth":  utils.GetAuthCacheClient(),
			"queue": utils.GetQueueClient(),
		},
		database.MongoClient,
		time.Duration(config.AppConfig.HealthCheckInterval)*time.Second,
	)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
