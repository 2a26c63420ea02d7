package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Store       StoreConfig
	API         APIConfig
	LogLevel    string
}

type StoreConfig struct {
	DataDir         string
	InventoryFile   string
	OrdersFile      string
	PerformanceFile string
}

type APIConfig struct {
	// Bcrypt hash of the API key guarding mutating routes. Empty disables auth.
	KeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DATA_DIR", ".")
	viper.SetDefault("INVENTORY_FILE", "inventory.xlsx")
	viper.SetDefault("ORDERS_FILE", "orders.xlsx")
	viper.SetDefault("PERFORMANCE_FILE", "performance.xlsx")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Store: StoreConfig{
			DataDir:         getEnvOrViper("DATA_DIR", "."),
			InventoryFile:   getEnvOrViper("INVENTORY_FILE", "inventory.xlsx"),
			OrdersFile:      getEnvOrViper("ORDERS_FILE", "orders.xlsx"),
			PerformanceFile: getEnvOrViper("PERFORMANCE_FILE", "performance.xlsx"),
		},
		API: APIConfig{
			KeyHash: getEnvOrViper("API_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// InventoryPath returns the full path of the catalog workbook.
func (s StoreConfig) InventoryPath() string {
	return filepath.Join(s.DataDir, s.InventoryFile)
}

// OrdersPath returns the full path of the ledger workbook.
func (s StoreConfig) OrdersPath() string {
	return filepath.Join(s.DataDir, s.OrdersFile)
}

// PerformancePath returns the full path of the performance workbook.
func (s StoreConfig) PerformancePath() string {
	return filepath.Join(s.DataDir, s.PerformanceFile)
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
