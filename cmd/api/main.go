package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/infrastructure/database"
	"github.com/sangkips/pos-api/internal/infrastructure/logger"
	"github.com/sangkips/pos-api/internal/infrastructure/repository"
	"github.com/sangkips/pos-api/internal/presentation/http/handler"
	"github.com/sangkips/pos-api/internal/presentation/http/middleware"
	"github.com/sangkips/pos-api/internal/presentation/http/routes"
	"github.com/sangkips/pos-api/pkg/money"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl := logger.New(cfg)
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, zl, cfg.Log.Level)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, zl); err != nil {
		zl.Warn("Failed to seed default data", zap.Error(err))
	}

	rounding, err := money.ParseRoundingMode(cfg.Money.Rounding)
	if err != nil {
		zl.Fatal("Invalid rounding mode", zap.Error(err))
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	rates, err := taxRateRepo.List(context.Background())
	if err != nil {
		zl.Fatal("Failed to load tax rates", zap.Error(err))
	}
	if len(rates) == 0 {
		zl.Warn("No tax rates configured; every sale will fail its tax summary")
	}
	for _, r := range rates {
		zl.Info("Tax rate active",
			zap.String("code", r.Code),
			zap.String("name", r.Name),
			zap.String("percent", money.RateKey(r.Percent)),
		)
	}

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	transactionService := service.NewTransactionService(transactionRepo, productRepo, taxRateRepo,
		service.TransactionServiceOptions{
			Rounding:       rounding,
			StrictProducts: cfg.Transaction.StrictProducts,
		}, zl)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:     handler.NewProductHandler(catalogService),
		Transaction: handler.NewTransactionHandler(transactionService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFromSettings(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		Logger:      zl,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Starting server",
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
			zap.Stringer("rounding", rounding),
			zap.Bool("strict_products", cfg.Transaction.StrictProducts),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
