package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/api"
	"github.com/jafarshop/invman/internal/config"
	"github.com/jafarshop/invman/internal/repository/xlsxstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := newLogger(cfg)
	defer logger.Sync()

	// Open the workbook stores
	repos, err := xlsxstore.NewRepositories(cfg.Store, logger)
	if err != nil {
		logger.Fatal("Failed to open data stores", zap.Error(err))
	}

	router := api.NewRouter(cfg, repos, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("data_dir", cfg.Store.DataDir),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Environment == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
			os.Exit(1)
		}
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}
