package rewards_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurumx/reward-ledger/internal/rewards_api/handler"
	"github.com/aurumx/reward-ledger/internal/rewards_api/middleware"
)

// setupRouter configures API routes and middleware for the application.
// Route pairs where a static segment would sit beside a path parameter
// (balance, process, the cart POSTs) share a wildcard route and dispatch
// inside the handler, because gin's tree rejects such siblings.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	rewardsHandler *handler.RewardsHandler,
	cartHandler *handler.CartHandler,
	catalogHandler *handler.CatalogHandler,
	transactionHandler *handler.TransactionHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	api := r.Group("/api")
	{
		rewards := api.Group("/rewards")
		{
			// /balance/{customerId} and /balance/card/{cardId}
			rewards.GET("/balance/*target", rewardsHandler.GetBalance)
			// /process/{customerId} and /process/card/{cardId}
			rewards.POST("/process/*target", rewardsHandler.Process)
			rewards.GET("/catalog/categories", catalogHandler.GetCategories)
			rewards.GET("/catalog/category/:id", catalogHandler.GetCategory)
			rewards.GET("/catalog/items", catalogHandler.GetItems)
			rewards.GET("/history/:customerId", rewardsHandler.GetHistory)
			rewards.GET("/ledger/:cardId", rewardsHandler.GetLedger)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:customerId", cartHandler.GetCart)
			// /add and /{customerId}/redeem
			cart.POST("/*action", cartHandler.Post)
			cart.PUT("/item/:cartItemId", cartHandler.UpdateItem)
			cart.DELETE("/item/:cartItemId", cartHandler.RemoveItem)
		}

		transactions := api.Group("/transactions")
		{
			transactions.POST("/generate", transactionHandler.Generate)
			transactions.GET("/card/:cardId", transactionHandler.GetByCard)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
