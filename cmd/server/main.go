package main

import (
	"fmt"
	"log"

	"github.com/architect/vocab-trainer/internal/common/database"
	commonHandlers "github.com/architect/vocab-trainer/internal/common/handlers"
	"github.com/architect/vocab-trainer/internal/common/health"
	"github.com/architect/vocab-trainer/internal/common/middleware"
	vocabHandlers "github.com/architect/vocab-trainer/internal/vocab/handlers"
	"github.com/architect/vocab-trainer/internal/vocab/questionbank"
	"github.com/architect/vocab-trainer/internal/vocab/store"
	"github.com/architect/vocab-trainer/pkg/config"
	"github.com/architect/vocab-trainer/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (SQLite for development, PostgreSQL for production)
	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := store.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to migrate document store: %v", err)
	}

	// Create Gin engine
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	healthChecker := health.NewHealthChecker(database.GetDB(), "1.0.0")
	healthHandler := commonHandlers.NewHealthHandler(healthChecker)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)
	router.GET("/health/metrics", healthHandler.Metrics)

	// Domain wiring
	loader := questionbank.NewLoader(cfg.Questions.Dir)
	hub := vocabHandlers.NewHub(cfg.Sessions.TTL)
	sessionHandler := vocabHandlers.NewSessionHandler(loader, hub)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/questions/sets", sessionHandler.ListQuestionSets)

		sessions := v1.Group("/sessions", middleware.AuthRequired())
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.POST("/:id/understood", sessionHandler.SubmitUnderstood)
			sessions.POST("/:id/confirm", sessionHandler.Confirm)
			sessions.POST("/:id/advance", sessionHandler.Advance)
			sessions.DELETE("/:id", sessionHandler.AbandonSession)
		}

		v1.GET("/statistics", middleware.AuthRequired(), vocabHandlers.GetMonthlyStatistics)
		v1.GET("/results/:type", middleware.AuthRequired(), vocabHandlers.GetTypeResults)
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting vocab trainer server",
		zap.String("address", address),
		zap.String("env", cfg.Server.Env),
		zap.String("question_bank", cfg.Questions.Dir),
	)

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
