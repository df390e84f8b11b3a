package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/max-ramos-rod/nda-backend/internal/api"
	"github.com/max-ramos-rod/nda-backend/internal/config"
	"github.com/max-ramos-rod/nda-backend/internal/db"
	"github.com/max-ramos-rod/nda-backend/internal/services"
	"github.com/max-ramos-rod/nda-backend/internal/stellar"
	"github.com/max-ramos-rod/nda-backend/pkg/logger"
	"github.com/max-ramos-rod/nda-backend/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	zapLogger, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	config.LogConfig(zapLogger, cfg)

	database, err := db.Initialize(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	metricsCollector := metrics.NewMetricsCollector()

	// Collaborators are built once here and injected everywhere;
	// nothing reconstructs clients per request.
	var stellarClient stellar.Client
	switch cfg.Stellar.Mode {
	case "horizon":
		stellarClient = stellar.NewHorizonClient(cfg.Stellar.HorizonURL, cfg.Stellar.FriendbotURL, zapLogger)
	default:
		stellarClient = stellar.NewMockClient(zapLogger)
	}

	userService := services.NewUserService(database, stellarClient, zapLogger, metricsCollector)
	grantService := services.NewGrantService(database, zapLogger)
	accessService := services.NewAccessService(database, zapLogger)
	vaultService := services.NewVaultService(database, userService, grantService, accessService, stellarClient, zapLogger, metricsCollector)

	router := api.NewRouter(zapLogger, metricsCollector, userService, vaultService)
	router.SetupRoutes()

	go func() {
		if err := router.Run(":" + cfg.Server.Port); err != nil {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	zapLogger.Info("Server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
	zapLogger.Info("Server gracefully stopped")
}
