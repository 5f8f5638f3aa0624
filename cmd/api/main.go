package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	ledgerUseCase "github.com/ledgerworks/budget-ledger/internal/domain/usecase/ledger"
	overviewUseCase "github.com/ledgerworks/budget-ledger/internal/domain/usecase/overview"
	userUseCase "github.com/ledgerworks/budget-ledger/internal/domain/usecase/user"

	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/auth"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/database"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/time"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(cfg.DatabaseConfig(), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction manager)
	uow := dbManager.CreateUnitOfWork()

	// Security adapters
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration, tp)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Initialize use cases
	userService := userUseCase.NewService(uow, hasher, tokens, tp, appLogger)
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger)
	overviewService := overviewUseCase.NewService(uow, appLogger)

	// Initialize API handlers
	authHandler := handler.NewAuthHandler(userService, appLogger)
	categoryHandler := handler.NewCategoryHandler(ledgerService, appLogger)
	transactionHandler := handler.NewTransactionHandler(ledgerService, appLogger)
	paymentHandler := handler.NewPaymentHandler(ledgerService, appLogger)
	queryHandler := handler.NewQueryHandler(ledgerService, overviewService, appLogger)

	var adminHandler *handler.AdminHandler
	if cfg.Server.ResetEnabled {
		adminHandler = handler.NewAdminHandler(dbManager.CreateResetter(), appLogger)
	}

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, tokens,
		authHandler, categoryHandler, transactionHandler,
		paymentHandler, queryHandler, adminHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
