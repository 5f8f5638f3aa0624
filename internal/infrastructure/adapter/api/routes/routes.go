package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/security"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	tokens security.TokenManager,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	transactionHandler *handler.TransactionHandler,
	paymentHandler *handler.PaymentHandler,
	queryHandler *handler.QueryHandler,
	adminHandler *handler.AdminHandler,
) {
	// Public routes
	router.POST("/users", authHandler.Register)
	router.POST("/auth", authHandler.Login)

	// Everything else requires a bearer token
	protected := router.Group("/")
	protected.Use(middleware.Auth(tokens))
	{
		create := protected.Group("/create")
		{
			create.POST("/budget-category", categoryHandler.Create)
			create.POST("/transaction", transactionHandler.Create)
			create.POST("/recurring-payment", paymentHandler.Create)
		}

		update := protected.Group("/update")
		{
			// Both record kinds share one edit handler; the body's table
			// field decides which one is touched.
			update.POST("/transaction", transactionHandler.Update)
			update.POST("/recurring-payment", transactionHandler.Update)
			update.POST("/budget-category", categoryHandler.UpdateBudget)
		}

		del := protected.Group("/delete")
		{
			del.POST("/categories", categoryHandler.Delete)
			del.POST("/transactions", transactionHandler.Delete)
			del.POST("/recurringpayments", paymentHandler.Delete)
		}

		protected.GET("/query/:table", queryHandler.Query)
		protected.GET("/overview", queryHandler.Overview)

		// The wipe endpoint only exists when an admin handler was wired,
		// which test environments opt into via config.
		if adminHandler != nil {
			protected.DELETE("/reset", adminHandler.Reset)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
