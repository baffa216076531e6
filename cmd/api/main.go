package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/infrastructure/cache"
	"github.com/sangkips/billbook-api/internal/infrastructure/database"
	"github.com/sangkips/billbook-api/internal/infrastructure/repository"
	"github.com/sangkips/billbook-api/internal/jobs"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/routes"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/printer"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Security.APIKey == "" {
		log.Warn("API_KEY is not set; every business endpoint will answer 500")
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Auth); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	redisCache := cache.New(context.Background(), &cfg.Redis)
	defer redisCache.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	pendingRepo := repository.NewPendingBillRepository(db)
	entryRepo := repository.NewManualEntryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	loc := cfg.App.Location()
	header := entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
	}

	// Initialize receipt printer
	receiptPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warnf("Failed to initialize printer, receipts will not print: %v", err)
		receiptPrinter = &printer.Buffer{}
	}

	// Initialize services
	authService := service.NewAuthService(cfg.Auth, userRepo)
	productService := service.NewProductService(productRepo, redisCache)
	billService := service.NewBillService(billRepo, loc)
	pendingService := service.NewPendingBillService(pendingRepo, loc, cfg.Shop.PhoneRegion, cfg.Shop.Name)
	promotionService := service.NewPromotionService(pendingRepo, redisCache)
	entryService := service.NewManualEntryService(entryRepo, loc)
	reportService := service.NewReportService(billRepo, entryRepo, loc)
	maintenanceService := service.NewMaintenanceService(pendingRepo, idempotencyRepo, cfg.Maintenance.StalePromotionAfter)
	documentService := service.NewDocumentService(billRepo, header, loc)
	printerService := service.NewPrinterService(receiptPrinter, billRepo, header, cfg.Printer.Width, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Bill:        handler.NewBillHandler(billService, documentService),
		PendingBill: handler.NewPendingBillHandler(pendingService, promotionService, maintenanceService),
		ManualEntry: handler.NewManualEntryHandler(entryService),
		Report:      handler.NewReportHandler(reportService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	scheduler := jobs.NewScheduler(maintenanceService, cfg.Maintenance.Schedule)
	if err := scheduler.Start(); err != nil {
		log.Warnf("Maintenance jobs disabled: %v", err)
	} else {
		defer scheduler.Stop()
	}

	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"app":  cfg.App.Name,
			"env":  cfg.App.Env,
			"port": port,
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
