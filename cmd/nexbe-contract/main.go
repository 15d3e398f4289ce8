package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nexbe-contract/internal/api"
	"nexbe-contract/internal/api/handlers"
	"nexbe-contract/internal/repository"
	"nexbe-contract/internal/service"
	"nexbe-contract/pkg/auth"
	"nexbe-contract/pkg/config"
	"nexbe-contract/pkg/logger"
	"nexbe-contract/pkg/postgres"
	"nexbe-contract/pkg/redis"

	"go.uber.org/zap"
)

// @title Nexbe Contract API
// @version 1.0
// @description Contract configuration, pricing and generation service for residential energy storage installations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@nexbe.pl

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Nexbe contract service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.InitSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to initialize database schema", zap.Error(err))
	}

	// Initialize Redis (contract number sequences, AI call budgets)
	redisClient, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	contractRepo := repository.NewContractRepository(db, appLogger)
	catalogRepo := repository.NewCatalogRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	leadRepo := repository.NewLeadRepository(db, appLogger)
	sequenceStore := repository.NewRedisSequenceStore(redisClient)
	callBudget := repository.NewRedisCallBudget(redisClient, cfg.Chat.MaxAICallsPerSession, cfg.Chat.SessionTTL)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	var generator service.TextGenerator
	if cfg.GigaChat.Enabled {
		llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
		generator = llmService
	} else {
		appLogger.Info("AI fallback disabled, chat runs on knowledge base only")
	}

	chatService := service.NewChatService(knowledgeRepo, generator, callBudget, &cfg.Chat, appLogger)
	if err := chatService.LoadKnowledge(ctx); err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	contractService := service.NewContractService(contractRepo, catalogRepo, sequenceStore, &cfg.Contract, appLogger)
	pdfService := service.NewPDFService(appLogger)
	signatureService := service.NewSignatureService(appLogger)
	leadService := service.NewLeadService(leadRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	contractHandler := handlers.NewContractHandler(contractService, pdfService, signatureService, appLogger)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	leadHandler := handlers.NewLeadHandler(leadService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, contractHandler, catalogHandler, chatHandler, leadHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
