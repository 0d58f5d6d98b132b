package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurumx/reward-ledger/internal/config"
	"github.com/aurumx/reward-ledger/internal/data/mongo"
	"github.com/aurumx/reward-ledger/internal/data/postgres"
	"github.com/aurumx/reward-ledger/internal/data/redis"
	"github.com/aurumx/reward-ledger/internal/logger"
	"github.com/aurumx/reward-ledger/internal/platform/messaging/producers"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
	"github.com/aurumx/reward-ledger/internal/rewards_api"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("rewards_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	redisDB, err := persistence.NewRedisDB(appCtx, log, &cfg.Redis)
	if err != nil {
		log.Error("Failed to initialize Redis", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer (publishes transaction generation requests)
	kafkaProducer, err := producers.NewGenerationReqMessageProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize generation request Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepository(log, postgresDB)
	cardRepo := postgres.NewCardRepository(log, postgresDB)
	balanceRepo := postgres.NewBalanceRepository(log, postgresDB)
	transactionRepo := postgres.NewTransactionRepository(log, postgresDB)
	catalogRepo := postgres.NewCatalogRepository(log, postgresDB)
	cartRepo := postgres.NewCartRepository(log, postgresDB)
	redemptionRepo := postgres.NewRedemptionRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	ledgerRepo := mongo.NewPointsLedgerRepository(log, mongoDB.Database())
	balanceCache := redis.NewBalanceCache(log, redisDB.Client(), cfg.Redis.BalanceTTL)

	// Initialize services
	balanceService := service.NewBalanceService(log, customerRepo, cardRepo, balanceRepo, ledgerRepo, balanceCache)
	accrualService := service.NewAccrualService(log, postgresDB, customerRepo, cardRepo, transactionRepo, balanceRepo, outboxRepo, balanceCache, &cfg.Rewards)
	cartService := service.NewCartService(log, customerRepo, catalogRepo, cartRepo)
	redemptionService := service.NewRedemptionService(log, postgresDB, customerRepo, cardRepo, catalogRepo, cartRepo, balanceRepo, redemptionRepo, outboxRepo, balanceCache)
	catalogService := service.NewCatalogService(catalogRepo)
	transactionService := service.NewTransactionService(log, cardRepo, transactionRepo, kafkaProducer)

	// Initialize REST server
	server := rewards_api.NewServer(log, cfg, balanceService, accrualService, cartService, redemptionService, catalogService, transactionService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	if err = redisDB.Close(); err != nil {
		log.Error("Error closing Redis connection", "error", err)
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
